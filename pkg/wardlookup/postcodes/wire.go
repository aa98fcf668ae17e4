package postcodes

import "github.com/ukaji3/wardlookup/pkg/wardlookup/models"

// singleResponse is the body of GET /postcodes/{code}.
type singleResponse struct {
	Status int                  `json:"status"`
	Result *models.LookupResult `json:"result"`
}

// batchRequest is the body of POST /postcodes.
type batchRequest struct {
	Postcodes []string `json:"postcodes"`
}

// batchResponse is the reply to POST /postcodes.
type batchResponse struct {
	Status int         `json:"status"`
	Result []batchItem `json:"result"`
}

type batchItem struct {
	Query  string               `json:"query"`
	Result *models.LookupResult `json:"result"`
}
