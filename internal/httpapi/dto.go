package httpapi

import "github.com/tinoosan/merchants/internal/model"

// merchantRequest is the body of POST and PUT. Unknown fields are ignored.
type merchantRequest struct {
    Name        string  `json:"name"`
    Description *string `json:"description"`
}

type merchantResponse struct {
    ID          int64   `json:"id"`
    Name        string  `json:"name"`
    Description *string `json:"description"`
}

// discoveryResponse is served at GET /.
type discoveryResponse struct {
    Service       string `json:"service"`
    NonPersistent string `json:"non_persistent"`
    Persistent    string `json:"persistent"`
    Docs          string `json:"docs"`
}

func toInput(req merchantRequest) model.Input {
    return model.Input{Name: req.Name, Description: req.Description}
}

func toMerchantResponse(m model.Merchant) merchantResponse {
    return merchantResponse{ID: m.ID, Name: m.Name, Description: m.Description}
}
