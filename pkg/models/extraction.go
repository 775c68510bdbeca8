package models

// AlphaStats summarizes a recovered alpha map. Mean and standard deviation
// are computed over raw alpha values; the pixel counts use post-snap alpha.
type AlphaStats struct {
	MeanAlpha         float64 `json:"mean_alpha"`
	AlphaStdDev       float64 `json:"alpha_std_dev"`
	OpaquePixels      int     `json:"opaque_pixels"`
	PartialPixels     int     `json:"partial_pixels"`
	TransparentPixels int     `json:"transparent_pixels"`
}

// BackdropReport carries the advisory backdrop verification result. Backdrop
// purity is owned by the upstream generation step, so a dirty backdrop is
// reported and logged but never rejected.
type BackdropReport struct {
	Checked       bool    `json:"checked"`
	WhiteClean    bool    `json:"white_clean"`
	BlackClean    bool    `json:"black_clean"`
	WhiteDistance float64 `json:"white_distance"`
	BlackDistance float64 `json:"black_distance"`
}

// ExtractionResponse is the service response for one alpha recovery run.
// ImageBase64 carries the encoded PNG when the client asked for a JSON
// payload; binary responses omit it.
type ExtractionResponse struct {
	WhiteRef          string         `json:"white_ref"`
	BlackRef          string         `json:"black_ref"`
	Timestamp         string         `json:"timestamp"`
	ProcessingTimeSec float64        `json:"processing_time_sec"`
	Width             int            `json:"width"`
	Height            int            `json:"height"`
	Threshold         float64        `json:"threshold"`
	Stats             AlphaStats     `json:"stats"`
	Backdrops         BackdropReport `json:"backdrops"`
	ImageBase64       string         `json:"image_base64,omitempty"`
}
