package business

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/deppfellow/review-api/internal/validation"
)

// Business is a row of the businesses table.
type Business struct {
	ID            int
	OwnerID       int
	Name          string
	StreetAddress string
	City          string
	State         string
	ZipCode       string
}

// ZipAsInt is the zip code as clients see it.
func (b Business) ZipAsInt() (int, error) {
	zip, err := strconv.Atoi(b.ZipCode)
	if err != nil {
		return 0, fmt.Errorf("business %d has non-numeric zip_code %q: %w", b.ID, b.ZipCode, err)
	}
	return zip, nil
}

// ZipCode accepts either a JSON string or a JSON integer. Integers are
// zero padded to five digits, so 2134 and "02134" are the same zip.
type ZipCode string

func (z *ZipCode) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*z = ZipCode(s)
		return nil
	}

	var n int
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("zip_code must be a string or an integer: %w", err)
	}
	if n < 0 {
		return fmt.Errorf("zip_code must not be negative")
	}
	*z = ZipCode(fmt.Sprintf("%05d", n))
	return nil
}

// Attributes is the full attribute set of a business. Every attribute is
// required, pointers tell a missing attribute apart from a zero value.
type Attributes struct {
	OwnerID       *int     `json:"owner_id" validate:"required"`
	Name          *string  `json:"name" validate:"required,max=50"`
	StreetAddress *string  `json:"street_address" validate:"required,max=100"`
	City          *string  `json:"city" validate:"required,max=50"`
	State         *string  `json:"state" validate:"required,len=2"`
	ZipCode       *ZipCode `json:"zip_code" validate:"required,len=5,number"`
}

// Business converts validated attributes into a row with the given id.
func (a Attributes) Business(id int) Business {
	return Business{
		ID:            id,
		OwnerID:       *a.OwnerID,
		Name:          *a.Name,
		StreetAddress: *a.StreetAddress,
		City:          *a.City,
		State:         *a.State,
		ZipCode:       string(*a.ZipCode),
	}
}

type CreateBusinessRequest struct {
	Attributes
}

func (r *CreateBusinessRequest) Validate() error {
	return validation.Struct(r)
}

// UpdateBusinessRequest replaces every attribute of business ID.
type UpdateBusinessRequest struct {
	ID int `param:"id" json:"-"`
	Attributes
}

func (r *UpdateBusinessRequest) Validate() error {
	return validation.Struct(r)
}

// Response is the client representation of a business.
type Response struct {
	ID            int    `json:"id"`
	OwnerID       int    `json:"owner_id"`
	Name          string `json:"name"`
	StreetAddress string `json:"street_address"`
	City          string `json:"city"`
	State         string `json:"state"`
	ZipCode       int    `json:"zip_code"`
	Self          string `json:"self"`
}
