package main

import (
	"encoding/binary"
	"encoding/json"
	"strconv"

	"github.com/klimoza/hex-game/sdk"
)

// ---------- Require ----------

func require(chain SDKInterface, cond bool, msg string) {
	if !cond {
		chain.Abort(msg)
	}
}

// ---------- JSON Conversions ----------

func ToJSON[T any](chain SDKInterface, v T, objectType string) string {
	b, err := json.Marshal(v)
	if err != nil {
		chain.Abort("failed to marshal " + objectType)
	}
	return string(b)
}

// ---------- UInt/String Helpers ----------

func UInt64ToString(val uint64) string {
	return strconv.FormatUint(val, 10)
}

// ---------- Parsing Helpers ----------

func nextField(s *string) string {
	for i := 0; i < len(*s); i++ {
		if (*s)[i] == '|' {
			f := (*s)[:i]
			*s = (*s)[i+1:]
			return f
		}
	}
	f := *s
	*s = ""
	return f
}

func parseU64Fast(s string) uint64 {
	var n uint64
	for i := 0; i < len(s); i++ {
		n = n*10 + uint64(s[i]-'0')
	}
	return n
}

func parseU8Fast(s string) uint8 {
	var n uint8
	for i := 0; i < len(s); i++ {
		n = n*10 + uint8(s[i]-'0')
	}
	return n
}

// parseFixedPoint3 parses a decimal string with up to 3 fractional digits
// and returns an integer scaled by 1000 (e.g., "1.23" -> 1230).
// No allocations, no floats.
func parseFixedPoint3(chain SDKInterface, s string) uint64 {
	n := len(s)
	if n == 0 {
		return 0
	}

	var intPart uint64
	var fracPart uint64
	var fracDigits int
	dotSeen := false

	for i := 0; i < n; i++ {
		c := s[i]

		if c == '.' {
			require(chain, !dotSeen, "invalid number: multiple dots")
			dotSeen = true
			continue
		}

		require(chain, c >= '0' && c <= '9', "invalid character in number")
		d := uint64(c - '0')

		if !dotSeen {
			intPart = intPart*10 + d
		} else {
			require(chain, fracDigits < 3, "too many fractional digits")
			fracDigits++
			fracPart = fracPart*10 + d
		}
	}

	// scale fractional part to 3 digits
	switch fracDigits {
	case 1:
		fracPart *= 100
	case 2:
		fracPart *= 10
	}

	return intPart*1000 + fracPart
}

// blockHeight reads the current block height from the env, zero when
// the host does not provide one (unit tests).
func blockHeight(chain SDKInterface) uint64 {
	ptr := chain.GetEnvKey("block.height")
	if ptr == nil || *ptr == "" {
		return 0
	}
	return parseU64Fast(*ptr)
}

// ---------- Transfer Intent Helpers ----------

type TransferAllow struct {
	Limit float64
	Token sdk.Asset
}

var validAssets = []string{sdk.AssetHbd.String(), sdk.AssetHive.String()}

// isValidAsset checks we only allow expected liquid tokens.
// Prevents random arbitrary symbols, basic safety guard.
func isValidAsset(token string) bool {
	for _, a := range validAssets {
		if token == a {
			return true
		}
	}
	return false
}

// GetFirstTransferAllow scans intents for one transfer.allow
// instruction and returns its parsed token+limit. Nil if missing.
func GetFirstTransferAllow(chain SDKInterface, intents []sdk.Intent) *TransferAllow {
	for _, intent := range intents {
		if intent.Type == "transfer.allow" {
			token := intent.Args["token"]
			if !isValidAsset(token) {
				chain.Abort("invalid intent token")
			}
			limit, err := strconv.ParseFloat(intent.Args["limit"], 64)
			if err != nil {
				chain.Abort("invalid intent limit")
			}
			return &TransferAllow{
				Limit: limit,
				Token: sdk.Asset(token),
			}
		}
	}
	return nil
}

// ---------- Binary codec helpers ----------

// rd is a binary reader utility over a byte slice,
// providing big-endian integer reads with safety checks.
type rd struct {
	chain SDKInterface
	b     []byte // raw buffer
	i     int    // current read index
}

func (r *rd) need(n int) {
	if r.i+n > len(r.b) {
		r.chain.Abort("decode overflow")
	}
}

func (r *rd) u8() byte {
	r.need(1)
	v := r.b[r.i]
	r.i++
	return v
}

func (r *rd) u16() uint16 {
	r.need(2)
	v := binary.BigEndian.Uint16(r.b[r.i : r.i+2])
	r.i += 2
	return v
}

func (r *rd) u32() uint32 {
	r.need(4)
	v := binary.BigEndian.Uint32(r.b[r.i : r.i+4])
	r.i += 4
	return v
}

func (r *rd) u64() uint64 {
	r.need(8)
	v := binary.BigEndian.Uint64(r.b[r.i : r.i+8])
	r.i += 8
	return v
}

func (r *rd) bytes(n int) []byte {
	r.need(n)
	v := r.b[r.i : r.i+n]
	r.i += n
	return v
}

// str reads a length-prefixed string (2-byte length).
func (r *rd) str() string {
	l := int(r.u16())
	return string(r.bytes(l))
}

// mustEnd verifies that the reader consumed all bytes exactly.
func (r *rd) mustEnd() {
	if r.i != len(r.b) {
		r.chain.Abort("trailing bytes")
	}
}

func appendU16BE(out []byte, v uint16) []byte {
	var tmp [2]byte
	binary.BigEndian.PutUint16(tmp[:], v)
	return append(out, tmp[:]...)
}

func appendU32BE(out []byte, v uint32) []byte {
	var tmp [4]byte
	binary.BigEndian.PutUint32(tmp[:], v)
	return append(out, tmp[:]...)
}

func appendU64BE(out []byte, v uint64) []byte {
	var tmp [8]byte
	binary.BigEndian.PutUint64(tmp[:], v)
	return append(out, tmp[:]...)
}

func appendString16(chain SDKInterface, out []byte, s string) []byte {
	if len(s) > 65535 {
		chain.Abort("string too long")
	}
	out = appendU16BE(out, uint16(len(s)))
	return append(out, s...)
}
