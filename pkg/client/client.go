package client

import "time"

// API groups the resource clients that act on behalf of one credential.
type API struct {
	Auth      *AuthClient
	Providers *ProviderClient
	Bookings  *BookingClient
}

func New(httpClient *HttpClient, credential CredentialFunc) *API {
	return &API{
		Auth:      NewAuthClient(httpClient),
		Providers: NewProviderClient(httpClient, credential),
		Bookings:  NewBookingClient(httpClient, credential),
	}
}

func NewFromURL(baseURL string, timeout time.Duration, credential CredentialFunc) *API {
	return New(NewHttpClient(baseURL, timeout), credential)
}
