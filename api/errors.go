package api

import "errors"

// ErrAddressNormalization is returned when an address cannot be brought into
// the canonical form the network expects.
var ErrAddressNormalization = errors.New("address normalization failed")
