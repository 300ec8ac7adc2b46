package types

import "math/big"

// Callback is the host-supplied function bridged by the `call-rust`
// built-in. It receives three arbitrary-precision integers and
// optionally returns one; returning (nil, false) is surfaced to BLisp
// as None, (v, true) as (Some v).
type Callback func(x, y, z *big.Int) (*big.Int, bool)
