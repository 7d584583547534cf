package transfer

import (
	"errors"
	"fmt"

	"github.com/chinmay1088/voyager/api"
)

var (
	// ErrInvalidAmount is returned for amounts that are not positive or that
	// round down to zero base units.
	ErrInvalidAmount = errors.New("invalid amount")

	// ErrUnsupportedRoute is returned when the identity has no key for the
	// network, or the network or asset is unknown.
	ErrUnsupportedRoute = errors.New("unsupported route")
)

// Stage names the step of a dispatch that talked to the network.
type Stage string

const (
	StageConnect   Stage = "connect"
	StageNonce     Stage = "nonce"
	StageGasPrice  Stage = "gas_price"
	StageDecimals  Stage = "decimals"
	StageEstimate  Stage = "estimate_gas"
	StageAccount   Stage = "account_lookup"
	StageBlockhash Stage = "blockhash"
	StageBroadcast Stage = "broadcast"
)

// NetworkError wraps a failure reported by a node.
type NetworkError struct {
	Network api.Network
	Stage   Stage
	Err     error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("%s %s failed: %v", e.Network, e.Stage, e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

func networkError(network api.Network, stage Stage, err error) error {
	return &NetworkError{Network: network, Stage: stage, Err: err}
}
