package loyalty

import "errors"

var (
	ErrCouponNotFound     = errors.New("coupon not found")
	ErrCouponExhausted    = errors.New("coupon claim budget exhausted")
	ErrCouponExpired      = errors.New("coupon expired")
	ErrInsufficientPoints = errors.New("insufficient points balance")
)
