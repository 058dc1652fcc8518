package domain

import "context"

type Category struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// DefaultCategories is the reference set seeded at migration time.
var DefaultCategories = []string{
	"Theology",
	"Evangelism",
	"Apologetics",
	"Christian Living",
	"Church History",
	"Prayer",
	"Discipleship",
}

type CategoryRepository interface {
	Names(ctx context.Context) ([]string, error)
	Seed(ctx context.Context, names []string) error
}
