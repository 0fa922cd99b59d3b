package uber

import (
	"context"
	"net/url"
)

// GetProducts returns the products offered at a location, in display order.
// Some products, such as experiments or promotions, are not returned.
//
// See https://developer.uber.com/docs/v1-products.
func (c *Client) GetProducts(ctx context.Context, lat, lon float64) (*Payload, error) {
	return c.Get(ctx, "/products", Query{
		{Key: "latitude", Value: lat},
		{Key: "longitude", Value: lon},
	})
}

// GetProduct returns details for one product. Product ids are specific to a
// location: uberX in San Francisco has a different id than uberX in Los Angeles.
func (c *Client) GetProduct(ctx context.Context, productID string) (*Payload, error) {
	return c.Get(ctx, "/products/"+url.QueryEscape(productID), nil)
}

// GetPriceEstimates returns an estimated price range for each product between
// two locations. Surge is already factored into the estimates.
func (c *Client) GetPriceEstimates(ctx context.Context, startLat, startLon, endLat, endLon float64) (*Payload, error) {
	return c.Get(ctx, "/estimates/price", Query{
		{Key: "start_latitude", Value: startLat},
		{Key: "start_longitude", Value: startLon},
		{Key: "end_latitude", Value: endLat},
		{Key: "end_longitude", Value: endLon},
	})
}

// TimeEstimateOption sets an optional parameter of GetTimeEstimates.
type TimeEstimateOption func(*timeEstimateParams)

type timeEstimateParams struct {
	customerUUID *string
	productID    *string
}

// WithCustomerUUID sends customer_uuid, used by the API for experience customization.
func WithCustomerUUID(uuid string) TimeEstimateOption {
	return func(p *timeEstimateParams) { p.customerUUID = &uuid }
}

// WithProductID restricts the estimate to a single product.
func WithProductID(id string) TimeEstimateOption {
	return func(p *timeEstimateParams) { p.productID = &id }
}

// GetTimeEstimates returns ETAs in seconds for the products offered at a
// location. The API recommends polling it every minute.
func (c *Client) GetTimeEstimates(ctx context.Context, startLat, startLon float64, opts ...TimeEstimateOption) (*Payload, error) {
	var params timeEstimateParams
	for _, opt := range opts {
		if opt != nil {
			opt(&params)
		}
	}

	query := Query{
		{Key: "start_latitude", Value: startLat},
		{Key: "start_longitude", Value: startLon},
	}
	if params.customerUUID != nil {
		query = query.Add("customer_uuid", *params.customerUUID)
	}
	if params.productID != nil {
		query = query.Add("product_id", *params.productID)
	}
	return c.Get(ctx, "/estimates/time", query)
}
