package domain

// Store is a registered restaurant location. Rows are created lazily by the
// identity resolver, exactly once per place id, and are never mutated or
// deleted by this service afterwards.
type Store struct {
	StoreID      int64  `json:"store_id"`
	PlaceID      string `json:"place_id,omitempty"`
	DisplayName  string `json:"display_name"`
	PartnerLevel int    `json:"partner_level"`
}
