package request

// CreateCheckoutRequest is the payload for POST /create-checkout.
type CreateCheckoutRequest struct {
	JobID string `json:"jobId" binding:"required"`
}
