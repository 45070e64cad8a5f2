// Copyright (c) Forkful (dev@forkful.app)
// SPDX-License-Identifier: BUSL-1.1

package main

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"strings"

	"cloud.google.com/go/storage"
	firebase "firebase.google.com/go/v4"
	"github.com/curioswitch/go-curiostack/server"
	"github.com/curioswitch/go-usegcp/middleware/firebaseauth"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/forkfulapp/forkful/internal/blob"
	"github.com/forkfulapp/forkful/internal/catalog"
	"github.com/forkfulapp/forkful/internal/config"
	"github.com/forkfulapp/forkful/internal/handler/addcomment"
	"github.com/forkfulapp/forkful/internal/handler/addrecipe"
	"github.com/forkfulapp/forkful/internal/handler/followrecipe"
	"github.com/forkfulapp/forkful/internal/handler/getcomments"
	"github.com/forkfulapp/forkful/internal/handler/getfeed"
	"github.com/forkfulapp/forkful/internal/handler/getprofile"
	"github.com/forkfulapp/forkful/internal/handler/getrecipe"
	"github.com/forkfulapp/forkful/internal/handler/likedrecipes"
	"github.com/forkfulapp/forkful/internal/handler/loadmore"
	"github.com/forkfulapp/forkful/internal/handler/myrecipes"
	"github.com/forkfulapp/forkful/internal/handler/refreshfeed"
	"github.com/forkfulapp/forkful/internal/handler/searchrecipes"
	"github.com/forkfulapp/forkful/internal/handler/setfilter"
	"github.com/forkfulapp/forkful/internal/handler/signout"
	"github.com/forkfulapp/forkful/internal/handler/togglelike"
	"github.com/forkfulapp/forkful/internal/handler/updateprofile"
	"github.com/forkfulapp/forkful/internal/mealdb"
	"github.com/forkfulapp/forkful/internal/search"
	"github.com/forkfulapp/forkful/internal/session"
	"github.com/forkfulapp/forkful/internal/store"
)

//go:embed conf/*.yaml
var confFiles embed.FS

func main() {
	conf, _ := fs.Sub(confFiles, "conf")
	os.Exit(server.Main(&config.Config{}, conf, setupServer))
}

func setupServer(ctx context.Context, conf *config.Config, s *server.Server) error {
	mux := server.Mux(s)

	fbApp, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: conf.Google.Project})
	if err != nil {
		return fmt.Errorf("main: create firebase app: %w", err)
	}

	fbAuth, err := fbApp.Auth(ctx)
	if err != nil {
		return fmt.Errorf("main: create firebase auth client: %w", err)
	}

	firestore, err := fbApp.Firestore(ctx)
	if err != nil {
		return fmt.Errorf("main: create firestore client: %w", err)
	}
	defer func() {
		if err := firestore.Close(); err != nil {
			slog.ErrorContext(ctx, "main: close firestore client", "error", err)
		}
	}()

	gcs, err := storage.NewGRPCClient(ctx)
	if err != nil {
		return fmt.Errorf("main: create storage client: %w", err)
	}
	defer func() {
		if err := gcs.Close(); err != nil {
			slog.ErrorContext(ctx, "main: close storage client", "error", err)
		}
	}()
	publicBucket := conf.Google.Project + "-public"

	recipes := store.New(firestore)
	meals := mealdb.NewClient(conf.MealAPI.BaseURL, nil)
	blobs := blob.NewStore(gcs, publicBucket)
	sessions := session.NewManager(recipes, meals, recipes, recipes, recipes, conf.Feed.PageSize)
	dispatcher := search.NewDispatcher(recipes, meals)
	recipeCatalog := catalog.New(recipes, meals)

	fbMW := firebaseauth.NewMiddleware(fbAuth)
	mux.Use(middleware.Maybe(fbMW, func(r *http.Request) bool {
		return strings.HasPrefix(r.URL.Path, "/api/")
	}))

	mux.Get("/api/feed", getfeed.NewHandler(sessions).GetFeed)
	mux.Post("/api/feed/more", loadmore.NewHandler(sessions).LoadMore)
	mux.Post("/api/feed/refresh", refreshfeed.NewHandler(sessions).RefreshFeed)
	mux.Post("/api/feed/filter", setfilter.NewHandler(sessions).SetFilter)
	mux.Post("/api/likes/toggle", togglelike.NewHandler(sessions).ToggleLike)
	mux.Get("/api/search", searchrecipes.NewHandler(dispatcher, sessions).SearchRecipes)
	mux.Post("/api/recipes", addrecipe.NewHandler(recipes, blobs).AddRecipe)
	mux.Get("/api/recipes/mine", myrecipes.NewHandler(recipes).MyRecipes)
	mux.Get("/api/recipes/liked", likedrecipes.NewHandler(recipeCatalog, sessions).LikedRecipes)
	mux.Get("/api/recipes/{id}", getrecipe.NewHandler(recipes, meals).GetRecipe)
	followed := followrecipe.NewHandler(sessions)
	mux.Post("/api/recipes/{id}/follow", followed.Follow)
	mux.Post("/api/recipes/{id}/unfollow", followed.Unfollow)
	mux.Get("/api/recipes/{id}/comments", getcomments.NewHandler(recipes).GetComments)
	mux.Post("/api/recipes/{id}/comments", addcomment.NewHandler(recipes).AddComment)
	mux.Get("/api/profile", getprofile.NewHandler(recipes).GetProfile)
	mux.Post("/api/profile", updateprofile.NewHandler(recipes, blobs).UpdateProfile)
	mux.Post("/api/signout", signout.NewHandler(sessions).SignOut)

	if err := server.Start(ctx, s); err != nil {
		return fmt.Errorf("main: starting server: %w", err)
	}
	return nil
}
