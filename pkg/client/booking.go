package client

import (
	"encoding/json"
	"fmt"
	"net/url"

	"tablebook/pkg/model"
)

// BookingClient is a small Go client for the booking HTTP API. It is used by
// the handler tests and is handy for smoke-testing a running instance.
type BookingClient struct {
	httpClient *HttpClient
}

func NewBookingClient(baseURL string) *BookingClient {
	return &BookingClient{
		httpClient: NewHttpClient(baseURL),
	}
}

func (c *BookingClient) Create(body any) (*Response, error) {
	return c.httpClient.POST("/api/bookings", body)
}

func (c *BookingClient) CreateRaw(rawBody []byte) (*Response, error) {
	return c.httpClient.POSTRaw("/api/bookings", rawBody)
}

func (c *BookingClient) List() (*Response, error) {
	return c.httpClient.GET("/api/bookings")
}

func (c *BookingClient) Delete(id string) (*Response, error) {
	return c.httpClient.DELETE("/api/bookings/" + url.PathEscape(id))
}

func (c *BookingClient) DecodeBooking(resp *Response) (*model.Booking, error) {
	var wrapper struct {
		Success bool            `json:"success"`
		Booking json.RawMessage `json:"booking"`
	}

	if err := json.Unmarshal(resp.Body, &wrapper); err != nil {
		return nil, fmt.Errorf("could not decode booking wrapper: %s: %w", resp.Body, err)
	}

	var booking model.Booking
	if err := json.Unmarshal(wrapper.Booking, &booking); err != nil {
		return nil, fmt.Errorf("could not decode booking json: %s: %w", resp.Body, err)
	}

	return &booking, nil
}

func (c *BookingClient) DecodeBookings(resp *Response) ([]*model.Booking, error) {
	var bookings []*model.Booking
	if err := json.Unmarshal(resp.Body, &bookings); err != nil {
		return nil, fmt.Errorf("could not decode booking list: %s: %w", resp.Body, err)
	}
	return bookings, nil
}
