package types

import "github.com/tidwall/gjson"

// RawPage is one upstream result page before normalization
type RawPage struct {
	Query    string
	Page     int
	Products []gjson.Result
	Took     int64 // milliseconds
	Provider ProviderID
}
