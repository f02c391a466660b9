package stream

import (
	"math/big"

	stronghold "github.com/iov-one/stronghold"
)

// Prorate computes the value released at the given time. Before the target
// timestamp the full value is scaled down by the elapsed fraction,
// floor(value * now / target). From the target timestamp on the full value
// is released.
//
// The intermediate product can exceed int64, so the computation is done on
// big integers. The quotient is guaranteed to fit, it is never larger than
// value.
func Prorate(value int64, now, target stronghold.UnixTime) int64 {
	if now >= target {
		return value
	}
	if now <= 0 {
		return 0
	}
	num := new(big.Int).Mul(big.NewInt(value), big.NewInt(int64(now)))
	num.Quo(num, big.NewInt(int64(target)))
	return num.Int64()
}
