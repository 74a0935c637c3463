package signedapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"
)

var (
	ErrStatusCodeNotOk = errors.New("http.status != 200")
	ErrMalformedBody   = errors.New("malformed signed api response")
)

type ClientCfg struct {
	BaseUrl    string
	HttpClient http.Client
	// bounds a single source request
	Timeout time.Duration
}

type SignedData struct {
	Airnode      string      `json:"airnode"`
	TemplateId   string      `json:"templateId"`
	Timestamp    json.Number `json:"timestamp"`
	EncodedValue string      `json:"encodedValue"`
	Signature    string      `json:"signature"`
}
