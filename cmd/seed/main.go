// Command seed fills a running API with fake users, posts, comments and likes.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"gospelreach/internal/core/logger"
	"gospelreach/internal/domain"
	"gospelreach/pkg/client"
)

type options struct {
	BaseURL      string
	Users        int
	PostsPerUser int
	Seed         int64
	Password     string
}

func main() {
	var o options
	pflag.StringVar(&o.BaseURL, "base-url", "http://127.0.0.1:5000", "API root")
	pflag.IntVar(&o.Users, "users", 5, "accounts to create")
	pflag.IntVar(&o.PostsPerUser, "posts", 3, "posts per account")
	pflag.Int64Var(&o.Seed, "seed", 0, "faker seed, 0 for random")
	pflag.StringVar(&o.Password, "password", "password123", "password for every account")
	pflag.Parse()

	log, cleanup := logger.New("info", false)
	defer cleanup()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, log, o); err != nil {
		log.Fatal("seed failed", zap.Error(err))
	}
}

func run(ctx context.Context, log *zap.Logger, o options) error {
	fake := gofakeit.New(o.Seed)
	anon := client.New(o.BaseURL)
	cats, err := anon.Categories(ctx)
	if err != nil {
		return fmt.Errorf("categories: %w", err)
	}
	if len(cats) == 0 {
		cats = domain.DefaultCategories
	}

	stamp := time.Now().Unix()
	users := make([]*client.Client, 0, o.Users)
	var postIDs []int64
	for i := range o.Users {
		cl := client.New(o.BaseURL)
		email := fmt.Sprintf("%s.%d.%d@example.org", strings.ToLower(fake.Username()), stamp, i)
		res, err := cl.Signup(ctx, fake.Name(), email, o.Password)
		if err != nil {
			return fmt.Errorf("signup %s: %w", email, err)
		}
		log.Info("user created", zap.Int64("id", res.ID), zap.String("email", email))
		users = append(users, cl)

		for range o.PostsPerUser {
			p, err := cl.CreatePost(ctx, client.PostInput{
				Title:    strings.TrimSuffix(fake.Sentence(fake.Number(3, 7)), "."),
				Content:  fake.Paragraph(fake.Number(1, 3), 4, 12, "\n\n"),
				Category: fake.RandomString(cats),
			})
			if err != nil {
				return fmt.Errorf("create post: %w", err)
			}
			postIDs = append(postIDs, p.ID)
		}
	}

	likes, comments := 0, 0
	for _, cl := range users {
		for _, id := range postIDs {
			if fake.Bool() {
				if _, err := cl.ToggleLike(ctx, id); err != nil {
					return fmt.Errorf("like %d: %w", id, err)
				}
				likes++
			}
			if fake.Number(0, 3) == 0 {
				if _, err := cl.AddComment(ctx, id, fake.Sentence(fake.Number(4, 14))); err != nil {
					return fmt.Errorf("comment %d: %w", id, err)
				}
				comments++
			}
		}
	}
	log.Info("seed done",
		zap.Int("users", len(users)),
		zap.Int("posts", len(postIDs)),
		zap.Int("likes", likes),
		zap.Int("comments", comments),
	)
	return nil
}
