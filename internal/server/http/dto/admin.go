package dto

// PushSettingRequest toggles order submission to the provider.
type PushSettingRequest struct {
	Enabled *bool `json:"enabled"`
}

// PushSettingResponse reports the push toggle.
type PushSettingResponse struct {
	Enabled bool `json:"enabled"`
}

// StatusOverrideRequest forces an order into a status.
type StatusOverrideRequest struct {
	Status string `json:"status"`
}
