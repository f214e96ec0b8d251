package dto

// SettlementRequest triggers a settlement handoff for the current cart.
type SettlementRequest struct {
	Redeem      bool   `json:"redeem"`
	Destination string `json:"destination"`
}

// SettlementResponse carries the serialized order-intake message.
type SettlementResponse struct {
	Destination string `json:"destination,omitempty"`
	Message     string `json:"message"`
	Link        string `json:"link,omitempty"`
}
