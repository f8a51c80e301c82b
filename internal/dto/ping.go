package dto

// PingRequest.Count is accepted for compatibility; a single probe is sent.
type PingRequest struct {
	Host  string `json:"host"`
	Count int    `json:"count"`
}

// PingResponse.Error names the ICMP status when Success is false.
type PingResponse struct {
	RTTMs   int64  `json:"rttMs"`
	Success bool   `json:"success"`
	Host    string `json:"host"`
	Error   string `json:"error,omitempty"`
}
