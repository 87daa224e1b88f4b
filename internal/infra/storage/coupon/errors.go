package coupon

import "errors"

var (
	// ErrCouponNotFound возвращается, когда купон с кодом не найден
	ErrCouponNotFound = errors.New("coupon.repository: coupon not found")

	// ErrCouponExhausted возвращается, когда лимит использований купона исчерпан
	ErrCouponExhausted = errors.New("coupon.repository: coupon usage limit reached")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("coupon.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("coupon.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("coupon.repository: failed to scan row")
)
