package testmodels

import (
	"encoding/json"

	"github.com/go-openapi/strfmt"

	"github.com/suparena/tablestore/storagemodels"
)

type VideoSnippet struct {

	// Identifier of the channel that published the video.
	// Required: true
	ChannelID *string `json:"ChannelId"`

	// Timestamp when the video was published.
	// Required: true
	// Format: date-time
	PublishedAt *strfmt.DateTime `json:"PublishedAt"`

	// Title of the video.
	// Required: true
	Title *string `json:"Title"`

	// A description of the video.
	Description string `json:"Description,omitempty"`

	// thumbnail Url
	ThumbnailURL string `json:"ThumbnailUrl,omitempty"`
}

// ToItem converts the snippet into a plain table item via its JSON form.
func (v *VideoSnippet) ToItem() (storagemodels.Item, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var item storagemodels.Item
	if err := json.Unmarshal(data, &item); err != nil {
		return nil, err
	}
	return item, nil
}
