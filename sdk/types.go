package sdk

// Address is a chain account identifier, e.g. "hive:someone" or a
// contract id.
type Address string

func (a Address) String() string { return string(a) }

// Asset names a liquid token the host ledger can move.
type Asset string

const (
	AssetHive Asset = "hive"
	AssetHbd  Asset = "hbd"
)

func (a Asset) String() string { return string(a) }

// Intent is a transaction-attached permission, e.g. transfer.allow.
type Intent struct {
	Type string            `json:"type"`
	Args map[string]string `json:"args"`
}

// Env is the execution environment of the current invocation.
type Env struct {
	ContractId Address `json:"contract_id"`
	TxId       string  `json:"tx_id"`
	Caller     Address `json:"caller"`
	Sender     struct {
		Address Address `json:"address"`
	} `json:"sender"`
	Intents []Intent `json:"intents"`
}

// CallResult is the outcome of one cross-contract call delivered to a
// continuation entrypoint. Payload is only meaningful when Ok is true.
type CallResult struct {
	Ok      bool
	Payload string
}
