// Copyright (c) Forkful (dev@forkful.app)
// SPDX-License-Identifier: BUSL-1.1

package config

import (
	"github.com/curioswitch/go-curiostack/config"
)

type Feed struct {
	// PageSize is the number of recipes fetched per feed page.
	PageSize int `koanf:"pagesize"`
}

type MealAPI struct {
	// BaseURL is the base URL of TheMealDB API.
	BaseURL string `koanf:"baseurl"`
}

type Config struct {
	config.Common

	// Feed is the configuration for the recipe feed.
	Feed Feed `koanf:"feed"`

	// MealAPI is the configuration for the external recipe API.
	MealAPI MealAPI `koanf:"mealapi"`
}
