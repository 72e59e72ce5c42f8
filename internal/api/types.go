package api

// StatusResponse is the generic {"status": "ok"} acknowledgement.
type StatusResponse struct {
	Status string `json:"status"`
}

// CaptchaResponse from GET /auth/captcha
type CaptchaResponse struct {
	CaptchaID string `json:"captchaId"`
	Code      string `json:"code"`
}

// RegisterResponse from POST /auth/register
type RegisterResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

// DeletePriceResponse from DELETE /admin/prices/{code}
type DeletePriceResponse struct {
	Status       string `json:"status"`
	RemovedTime  int64  `json:"removed_time"`  // Timestamp of the removed listing (ms)
	RemovedPrice int64  `json:"removed_price"` // Price of the removed listing
}
