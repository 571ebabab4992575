package seed

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"commune/internal/models"

	"gorm.io/gorm"
)

// Options configuration for the seeder
type Options struct {
	NumUsers    int
	NumPosts    int
	ShouldClean bool
}

// Seed populates the database with test data
func Seed(db *gorm.DB, opts Options) error {
	log.Printf("🌱 Starting database seeding with %d users and %d posts...", opts.NumUsers, opts.NumPosts)

	// Clear existing data to avoid conflicts if requested
	if opts.ShouldClean {
		if err := clearData(db); err != nil {
			log.Println("⚠️  Warning: Could not clear all existing data, but continuing anyway...")
		}
	}

	factory := NewFactory(db)

	users, err := createUsers(factory, opts.NumUsers)
	if err != nil {
		return fmt.Errorf("failed to create users: %w", err)
	}
	log.Printf("✓ %d test users created", len(users))

	posts, err := createPosts(factory, users, opts.NumPosts)
	if err != nil {
		return fmt.Errorf("failed to create posts: %w", err)
	}
	log.Printf("✓ %d posts created", len(posts))

	comments, err := createComments(factory, users, posts)
	if err != nil {
		return fmt.Errorf("failed to create comments: %w", err)
	}
	log.Printf("✓ %d comments created", comments)

	log.Println("🎉 Database seeding completed successfully!")
	return nil
}

func clearData(db *gorm.DB) error {
	log.Println("🗑️  Clearing existing data...")
	sql := `TRUNCATE TABLE comments, posts, users RESTART IDENTITY CASCADE;`
	return db.Exec(sql).Error
}

func createUsers(factory *Factory, count int) ([]*models.User, error) {
	users := make([]*models.User, 0, count)

	// Always include some well-known users for manual testing
	if count >= 2 {
		for _, name := range []string{"alice", "bob"} {
			name := name
			user, err := factory.CreateUser(func(u *models.User) {
				u.Username = name
				u.Email = fmt.Sprintf("%s@example.com", name)
				u.Bio = "One of the OGs."
			})
			if err == nil {
				users = append(users, user)
			}
		}
	}

	for i := len(users); i < count; i++ {
		user, err := factory.CreateUser()
		if err != nil {
			log.Printf("Failed to create user: %v", err)
			continue
		}
		users = append(users, user)

		if i%100 == 0 {
			log.Printf("Created %d users...", i)
		}
	}

	return users, nil
}

func createPosts(factory *Factory, users []*models.User, count int) ([]*models.Post, error) {
	//nolint:gosec // Weak random number generator is fine for seeding
	r := rand.New(rand.NewSource(time.Now().UnixNano()))
	posts := make([]*models.Post, 0, count)

	visibilities := []string{
		models.VisibilityPublic, models.VisibilityPublic, models.VisibilityPublic,
		models.VisibilityFriends, models.VisibilityPrivate,
	}

	for i := 0; i < count; i++ {
		user := users[r.Intn(len(users))]
		visibility := visibilities[r.Intn(len(visibilities))]

		post, err := factory.CreatePost(user, func(p *models.Post) {
			p.Visibility = visibility
			if r.Float32() < 0.3 {
				p.Title = nil
			}
			if r.Float32() > 0.4 {
				p.ImageURL = ""
			}
		})
		if err != nil {
			return nil, err
		}
		posts = append(posts, post)

		if i%100 == 0 {
			log.Printf("Created %d posts...", i)
		}
	}

	return posts, nil
}

// createComments attaches a small thread to most posts: a few top-level
// comments, some of which get direct replies.
func createComments(factory *Factory, users []*models.User, posts []*models.Post) (int, error) {
	//nolint:gosec // Weak random number generator is fine for seeding
	r := rand.New(rand.NewSource(time.Now().UnixNano()))
	created := 0

	for _, post := range posts {
		for i := 0; i < r.Intn(4); i++ {
			commenter := users[r.Intn(len(users))]
			comment, err := factory.CreateComment(commenter, post)
			if err != nil {
				return created, err
			}
			created++

			for j := 0; j < r.Intn(3); j++ {
				replier := users[r.Intn(len(users))]
				if _, err := factory.CreateReply(replier, comment); err != nil {
					return created, err
				}
				created++
			}
		}
	}

	return created, nil
}
