package roblox

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/placebot/internal/common"
	"github.com/dmitrijs2005/placebot/internal/netx"
)

// placeAssetTypeID is the asset type used when creating a new place.
const placeAssetTypeID = "9"

const (
	defaultNewPlaceName        = "New Place"
	defaultNewPlaceDescription = "Uploaded via placebot"
)

// UploadType tells whether an upload created a place or replaced one.
type UploadType string

const (
	UploadNew    UploadType = "new"
	UploadUpdate UploadType = "update"
)

// PlaceSettings is the metadata patched onto a place after upload.
type PlaceSettings struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// PlaceDetails is the public information about a place.
type PlaceDetails struct {
	PlaceID     int64  `json:"placeId"`
	Name        string `json:"name"`
	Description string `json:"description"`
	URL         string `json:"url"`
	Builder     string `json:"builder"`
}

// UploadPlace sends a place file. placeID > 0 replaces that place; otherwise
// a new place is created. The platform answers with the numeric id as plain
// text; anything else is ErrUnexpectedResponse.
func (c *Client) UploadPlace(ctx context.Context, cookie, token string, data []byte, placeID int64) (int64, error) {
	const op = "upload"

	q := url.Values{}
	if placeID > 0 {
		q.Set("assetid", strconv.FormatInt(placeID, 10))
	} else {
		q.Set("assetTypeId", placeAssetTypeID)
		q.Set("name", defaultNewPlaceName)
		q.Set("description", defaultNewPlaceDescription)
	}

	req, err := c.newRequest(ctx, http.MethodPost, c.endpoints.Data+"/Data/Upload.ashx?"+q.Encode(), cookie, bytes.NewReader(data))
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	req.Header.Set(common.CSRFTokenHeaderName, token)
	req.Header.Set("Content-Type", "application/octet-stream")

	body, _, err := c.do(op, req)
	if err != nil {
		return 0, err
	}

	text := strings.TrimSpace(string(body))
	id, err := ParsePlaceID(text)
	if err != nil {
		return 0, fmt.Errorf("%s: %w: %s", op, common.ErrUnexpectedResponse, netx.Truncate(text, netx.DisplayLimit))
	}
	return id, nil
}

// UpdatePlace patches the place name and description.
func (c *Client) UpdatePlace(ctx context.Context, cookie, token string, placeID int64, settings PlaceSettings) error {
	const op = "publish"

	payload, err := json.Marshal(settings)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	u := fmt.Sprintf("%s/v1/places/%d", c.endpoints.Develop, placeID)
	req, err := c.newRequest(ctx, http.MethodPatch, u, cookie, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	req.Header.Set(common.CSRFTokenHeaderName, token)
	req.Header.Set("Content-Type", "application/json")

	_, _, err = c.do(op, req)
	return err
}

// PlaceDetails looks up public information about a place. No cookie is sent.
func (c *Client) PlaceDetails(ctx context.Context, placeID int64) (PlaceDetails, error) {
	const op = "place details"

	u := fmt.Sprintf("%s/v1/games/multiget-place-details?placeIds=%d", c.endpoints.Games, placeID)
	req, err := c.newRequest(ctx, http.MethodGet, u, "", nil)
	if err != nil {
		return PlaceDetails{}, fmt.Errorf("%s: %w", op, err)
	}
	req.Header.Set("Accept", "application/json")

	body, _, err := c.do(op, req)
	if err != nil {
		return PlaceDetails{}, err
	}

	var details []PlaceDetails
	if err := json.Unmarshal(body, &details); err != nil {
		return PlaceDetails{}, fmt.Errorf("%s: %w: %v", op, common.ErrUnexpectedResponse, err)
	}
	if len(details) == 0 {
		return PlaceDetails{}, fmt.Errorf("%s: place %d: %w", op, placeID, common.ErrNotFound)
	}
	return details[0], nil
}

// PlayURL is the public page of a place.
func (c *Client) PlayURL(placeID int64) string {
	return fmt.Sprintf("%s/games/%d", c.endpoints.WWW, placeID)
}

// EditURL is the creator overview page of a place.
func (c *Client) EditURL(placeID int64) string {
	return fmt.Sprintf("%s/develop/places/%d/overview", c.endpoints.WWW, placeID)
}

// ParsePlaceID parses a place id made of ASCII digits only; signs, spaces
// and empty strings are rejected.
func ParsePlaceID(s string) (int64, error) {
	if s == "" {
		return 0, strconv.ErrSyntax
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return 0, strconv.ErrSyntax
		}
	}
	return strconv.ParseInt(s, 10, 64)
}
