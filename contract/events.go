package main

import "strconv"

// Event represents the common structure for all emitted events.
// Each event has a type and a set of key/value attributes.
type Event struct {
	Type       string            `json:"type"`
	Attributes map[string]string `json:"attributes"`
}

// emitEvent constructs an Event object with the given type and attributes,
// and logs it to the blockchain state as JSON.
func emitEvent(chain SDKInterface, eventType string, attributes map[string]string) {
	event := Event{
		Type:       eventType,
		Attributes: attributes,
	}
	chain.Log(ToJSON(chain, event, eventType+" event data"))
}

// EmitGameCreated emits an event when a new game is created.
func EmitGameCreated(chain SDKInterface, gameId uint64, createdByAddress string) {
	emitEvent(chain, "gameCreated", map[string]string{
		"id": UInt64ToString(gameId),
		"by": createdByAddress,
	})
}

// EmitGameFunded emits an event when a player's stake deposit is
// confirmed and their clock stream exists.
func EmitGameFunded(chain SDKInterface, gameId uint64, player uint8) {
	emitEvent(chain, "gameFunded", map[string]string{
		"id":     UInt64ToString(gameId),
		"player": strconv.FormatUint(uint64(player), 10),
	})
}

// emitMove picks the right event for an applied move.
func emitMove(chain SDKInterface, g *Game, mv *pendingMove) {
	if mv.Type == Swap {
		EmitGameSwap(chain, g.ID, mv.By)
		return
	}
	EmitGameMove(chain, g.ID, mv.By, mv.Cell)
}

// EmitGameMove emits an event when a player places a stone.
func EmitGameMove(chain SDKInterface, gameId uint64, moveByAddress string, cell Cell) {
	emitEvent(chain, "gameMove", map[string]string{
		"id":     UInt64ToString(gameId),
		"moveBy": moveByAddress,
		"row":    strconv.FormatUint(uint64(cell.Row), 10),
		"col":    strconv.FormatUint(uint64(cell.Col), 10),
	})
}

// EmitGameSwap emits an event when the second player invokes the swap
// rule instead of placing a stone.
func EmitGameSwap(chain SDKInterface, gameId uint64, moveByAddress string) {
	emitEvent(chain, "gameSwap", map[string]string{
		"id":     UInt64ToString(gameId),
		"moveBy": moveByAddress,
	})
}

// EmitGameWon emits an event when a game is won, either by connection
// or by the opponent's clock draining.
func EmitGameWon(chain SDKInterface, gameId uint64, winnerAddress, how string) {
	emitEvent(chain, "gameWon", map[string]string{
		"id":     UInt64ToString(gameId),
		"winner": winnerAddress,
		"how":    how,
	})
}

// EmitGameDrawn emits an event when both clocks drain and the stakes
// go back to their owners.
func EmitGameDrawn(chain SDKInterface, gameId uint64) {
	emitEvent(chain, "gameDrawn", map[string]string{
		"id": UInt64ToString(gameId),
	})
}

// EmitGameResigned emits an event when a player resigns. Winner is
// empty when the game was cancelled before it started.
func EmitGameResigned(chain SDKInterface, gameId uint64, resignerAddress, winnerAddress string) {
	emitEvent(chain, "gameResigned", map[string]string{
		"id":       UInt64ToString(gameId),
		"resigner": resignerAddress,
		"winner":   winnerAddress,
	})
}

// EmitStreamsSettled emits an event once the pot left the contract.
func EmitStreamsSettled(chain SDKInterface, gameId uint64, winnerAddress string, amount uint64) {
	emitEvent(chain, "streamsSettled", map[string]string{
		"id":     UInt64ToString(gameId),
		"to":     winnerAddress,
		"amount": UInt64ToString(amount),
	})
}
