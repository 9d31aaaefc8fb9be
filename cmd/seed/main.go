package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"time"

	"libraryapi/internal/author"
	"libraryapi/internal/book"
	"libraryapi/internal/config"
	"libraryapi/internal/genre"
	"libraryapi/internal/logging"
	"libraryapi/internal/platform/postgres"
	"libraryapi/internal/reader"
)

var (
	genreNames = []string{"Fiction", "Science Fiction", "History", "Science", "Technology", "Romance", "Mystery", "Biography", "Philosophy", "Art"}
	authorSeed = []struct{ name, born string }{
		{"Ursula K. Le Guin", "1929-10-21"},
		{"Isaac Asimov", "1920-01-02"},
		{"Mary Beard", "1955-01-01"},
		{"Agatha Christie", "1890-09-15"},
		{"Carl Sagan", "1934-11-09"},
		{"Jane Austen", "1775-12-16"},
	}
	words = []string{"Journey", "Adventure", "Mystery", "Discovery", "Legacy", "Horizon", "Chronicle", "Odyssey", "Quest", "Frontier"}
)

const (
	demoEmail    = "demo@library.local"
	demoPassword = "demo-password"
)

type services struct {
	readers *reader.Service
	authors *author.Service
	genres  *genre.Service
	books   *book.Service
}

func main() {
	count := flag.Int("books", 50, "number of generated books")
	flag.Parse()

	config.LoadEnvFiles()
	log := logging.New(os.Stderr, "info", "text")
	ctx := context.Background()

	dsn := config.DSNFromEnv()
	pool, err := postgres.Open(ctx, dsn, 5*time.Second)
	if err != nil {
		log.Error(ctx, "failed to connect to database", "dsn", config.RedactDSN(dsn), "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	timeout := 5 * time.Second
	svc := services{
		readers: reader.NewService(reader.NewPostgresRepo(pool, timeout), log),
		authors: author.NewService(author.NewPostgresRepo(pool, timeout), log),
		genres:  genre.NewService(genre.NewPostgresRepo(pool, timeout), log),
		books:   book.NewService(book.NewPostgresRepo(pool, timeout), log),
	}

	if err := seed(ctx, svc, log, *count, rand.New(rand.NewSource(time.Now().UnixNano()))); err != nil {
		log.Error(ctx, "seed failed", "error", err)
		os.Exit(1)
	}
}

// seed fills an empty catalog. It does nothing if books already exist.
func seed(ctx context.Context, svc services, log logging.Logger, count int, rnd *rand.Rand) error {
	existing, err := svc.books.List(ctx, 0, 1)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		log.Info(ctx, "catalog already seeded, skipping")
		return nil
	}

	genreIDs := make([]int64, 0, len(genreNames))
	for _, name := range genreNames {
		g, err := svc.genres.Create(ctx, name)
		if err != nil {
			return fmt.Errorf("genre %q: %w", name, err)
		}
		genreIDs = append(genreIDs, g.ID)
	}

	authorIDs := make([]int64, 0, len(authorSeed))
	for _, a := range authorSeed {
		born := a.born
		created, err := svc.authors.Create(ctx, author.Input{Name: a.name, BirthDate: &born})
		if err != nil {
			return fmt.Errorf("author %q: %w", a.name, err)
		}
		authorIDs = append(authorIDs, created.ID)
	}

	for i := 0; i < count; i++ {
		desc := fmt.Sprintf("A book about %s.", pick(rnd, words))
		in := book.Input{
			Title:           fmt.Sprintf("%s %d", pick(rnd, words), i+1),
			Description:     &desc,
			PublicationDate: fmt.Sprintf("%d-%02d-%02d", 1950+rnd.Intn(75), 1+rnd.Intn(12), 1+rnd.Intn(28)),
			AvailableCopies: rnd.Intn(6),
			AuthorIDs:       []int64{pick(rnd, authorIDs)},
			GenreIDs:        []int64{pick(rnd, genreIDs), pick(rnd, genreIDs)},
		}
		if _, err := svc.books.Create(ctx, in); err != nil {
			return fmt.Errorf("book %d: %w", i+1, err)
		}
	}

	if _, err := svc.readers.Register(ctx, "Demo Reader", demoEmail, demoPassword); err != nil && !errors.Is(err, reader.ErrEmailTaken) {
		return fmt.Errorf("demo reader: %w", err)
	}

	log.Info(ctx, "seed complete",
		"genres", len(genreIDs),
		"authors", len(authorIDs),
		"books", count,
		"demo_reader", demoEmail,
	)
	return nil
}

func pick[T any](rnd *rand.Rand, xs []T) T {
	return xs[rnd.Intn(len(xs))]
}
