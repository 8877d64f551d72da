// Copyright 2025 Rizome Labs, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package models

import (
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// MediaType represents different types of media content
type MediaType string

const (
	MediaTypeText  MediaType = "text"
	MediaTypeImage MediaType = "image"
)

// MediaContent represents multimodal content attached to a step or message.
// The memory layer treats it as an opaque image reference.
type MediaContent struct {
	Type     MediaType `json:"type"`
	Text     string    `json:"text,omitempty"`
	ImageURL *ImageURL `json:"image_url,omitempty"`
}

// ImageURL represents an image reference
type ImageURL struct {
	URL    string `json:"url"`
	Detail string `json:"detail,omitempty"`
}

// NewImageContent creates image content from a URL or data URI
func NewImageContent(url string, detail string) *MediaContent {
	return &MediaContent{
		Type: MediaTypeImage,
		ImageURL: &ImageURL{
			URL:    url,
			Detail: detail,
		},
	}
}

// LoadImageFromFile loads an image file and encodes it as a data URI
func LoadImageFromFile(filePath string) (*MediaContent, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read image file: %w", err)
	}

	mimeType := mimeTypeForExtension(filepath.Ext(filePath))
	encoded := base64.StdEncoding.EncodeToString(data)

	return &MediaContent{
		Type: MediaTypeImage,
		ImageURL: &ImageURL{
			URL: fmt.Sprintf("data:%s;base64,%s", mimeType, encoded),
		},
	}, nil
}

// ToDict returns a dictionary representation of the media content
func (mc *MediaContent) ToDict() map[string]interface{} {
	result := map[string]interface{}{
		"type": string(mc.Type),
	}

	if mc.Text != "" {
		result["text"] = mc.Text
	}

	if mc.ImageURL != nil {
		imageURL := map[string]interface{}{
			"url": mc.ImageURL.URL,
		}
		if mc.ImageURL.Detail != "" {
			imageURL["detail"] = mc.ImageURL.Detail
		}
		result["image_url"] = imageURL
	}

	return result
}

func mimeTypeForExtension(ext string) string {
	switch strings.ToLower(ext) {
	case ".png":
		return "image/png"
	case ".gif":
		return "image/gif"
	case ".webp":
		return "image/webp"
	default:
		return "image/jpeg"
	}
}
