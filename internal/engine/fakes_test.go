package engine

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/ripplr-app/backend/internal/models"
	"github.com/ripplr-app/backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// In-memory repositories for engine tests. Reads hand out copies so a
// mutation only becomes visible through an explicit Save, matching the
// fetch-mutate-write cycle against the real store.

var errStoreUnavailable = errors.New("store unavailable")

type fakeUserRepo struct {
	order     []string
	profiles  map[string]*models.UserProfile
	failSaves map[string]bool
}

var _ repositories.UserRepository = (*fakeUserRepo)(nil)

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		profiles:  map[string]*models.UserProfile{},
		failSaves: map[string]bool{},
	}
}

func (f *fakeUserRepo) add(name string) *models.UserProfile {
	p := &models.UserProfile{
		ID:        primitive.NewObjectID(),
		Name:      name,
		Following: []string{},
		Followers: []string{},
		Posts:     []string{},
		Replies:   []string{},
		Likes:     []string{},
	}
	f.profiles[p.ID.Hex()] = cloneProfile(p)
	f.order = append(f.order, p.ID.Hex())
	return p
}

func (f *fakeUserRepo) get(id string) *models.UserProfile {
	return f.profiles[id]
}

func (f *fakeUserRepo) CreateProfile(_ context.Context, p *models.UserProfile) error {
	p.ID = primitive.NewObjectID()
	f.profiles[p.ID.Hex()] = cloneProfile(p)
	f.order = append(f.order, p.ID.Hex())
	return nil
}

func (f *fakeUserRepo) GetProfileByID(_ context.Context, id string) (*models.UserProfile, error) {
	p, ok := f.profiles[id]
	if !ok {
		return nil, fmt.Errorf("user profile %s: %w", id, models.ErrNotFound)
	}
	return cloneProfile(p), nil
}

func (f *fakeUserRepo) SaveProfile(_ context.Context, p *models.UserProfile) error {
	id := p.ID.Hex()
	if f.failSaves[id] {
		return errStoreUnavailable
	}
	if _, ok := f.profiles[id]; !ok {
		return fmt.Errorf("user profile %s: %w", id, models.ErrNotFound)
	}
	f.profiles[id] = cloneProfile(p)
	return nil
}

func (f *fakeUserRepo) DeleteProfile(_ context.Context, id string) error {
	if _, ok := f.profiles[id]; !ok {
		return fmt.Errorf("user profile %s: %w", id, models.ErrNotFound)
	}
	delete(f.profiles, id)
	for i, v := range f.order {
		if v == id {
			f.order = append(f.order[:i], f.order[i+1:]...)
			break
		}
	}
	return nil
}

// SampleProfiles returns the first n profiles in insertion order, so
// tests control exactly what the "random" sample contains.
func (f *fakeUserRepo) SampleProfiles(_ context.Context, n int) ([]models.UserProfile, error) {
	var out []models.UserProfile
	for _, id := range f.order {
		if len(out) == n {
			break
		}
		out = append(out, *cloneProfile(f.profiles[id]))
	}
	return out, nil
}

func (f *fakeUserRepo) SearchProfilesByName(_ context.Context, query string) ([]models.UserProfile, error) {
	var out []models.UserProfile
	for _, id := range f.order {
		p := f.profiles[id]
		if strings.Contains(strings.ToLower(p.Name), strings.ToLower(query)) {
			out = append(out, *cloneProfile(p))
		}
	}
	return out, nil
}

type fakePostRepo struct {
	posts     map[string]*models.Post
	failSaves map[string]bool
}

var _ repositories.PostRepository = (*fakePostRepo)(nil)

func newFakePostRepo() *fakePostRepo {
	return &fakePostRepo{
		posts:     map[string]*models.Post{},
		failSaves: map[string]bool{},
	}
}

func (f *fakePostRepo) add(p *models.Post) *models.Post {
	if p.ID.IsZero() {
		p.ID = primitive.NewObjectID()
	}
	if p.Likes == nil {
		p.Likes = map[string]bool{}
	}
	if p.Replies == nil {
		p.Replies = []string{}
	}
	f.posts[p.ID.Hex()] = clonePost(p)
	return p
}

func (f *fakePostRepo) get(id string) *models.Post {
	return f.posts[id]
}

func (f *fakePostRepo) CreatePost(_ context.Context, p *models.Post) error {
	p.ID = primitive.NewObjectID()
	f.posts[p.ID.Hex()] = clonePost(p)
	return nil
}

func (f *fakePostRepo) GetPostByID(_ context.Context, id string) (*models.Post, error) {
	p, ok := f.posts[id]
	if !ok {
		return nil, fmt.Errorf("post %s: %w", id, models.ErrNotFound)
	}
	return clonePost(p), nil
}

func (f *fakePostRepo) SavePost(_ context.Context, p *models.Post) error {
	id := p.ID.Hex()
	if f.failSaves[id] {
		return errStoreUnavailable
	}
	if _, ok := f.posts[id]; !ok {
		return fmt.Errorf("post %s: %w", id, models.ErrNotFound)
	}
	f.posts[id] = clonePost(p)
	return nil
}

func (f *fakePostRepo) DeletePost(_ context.Context, id string) error {
	if _, ok := f.posts[id]; !ok {
		return fmt.Errorf("post %s: %w", id, models.ErrNotFound)
	}
	delete(f.posts, id)
	return nil
}

func (f *fakePostRepo) GetFeedPosts(_ context.Context) ([]models.Post, error) {
	return f.findSorted(func(p *models.Post) bool { return p.ParentPostID == "" }), nil
}

func (f *fakePostRepo) GetPostsByTag(_ context.Context, tag string) ([]models.Post, error) {
	return f.findSorted(func(p *models.Post) bool {
		return p.ParentPostID == "" && strings.EqualFold(p.Tag, tag)
	}), nil
}

func (f *fakePostRepo) GetReplies(_ context.Context, rootPostID string) ([]models.Post, error) {
	return f.findSorted(func(p *models.Post) bool { return p.ParentPostID == rootPostID }), nil
}

func (f *fakePostRepo) findSorted(match func(*models.Post) bool) []models.Post {
	var out []models.Post
	for _, p := range f.posts {
		if match(p) {
			out = append(out, *clonePost(p))
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}

type fakeAccountRepo struct {
	deleted []string
}

var _ repositories.AccountRepository = (*fakeAccountRepo)(nil)

func (f *fakeAccountRepo) CreateAccount(*models.Account) error { return nil }

func (f *fakeAccountRepo) GetAccountByEmail(string) (*models.Account, error) {
	return nil, models.ErrNotFound
}

func (f *fakeAccountRepo) GetAccountByProfileID(string) (*models.Account, error) {
	return nil, models.ErrNotFound
}

func (f *fakeAccountRepo) DeleteAccountByProfileID(profileID string) error {
	f.deleted = append(f.deleted, profileID)
	return nil
}

func cloneProfile(p *models.UserProfile) *models.UserProfile {
	c := *p
	c.Following = append([]string{}, p.Following...)
	c.Followers = append([]string{}, p.Followers...)
	c.Posts = append([]string{}, p.Posts...)
	c.Replies = append([]string{}, p.Replies...)
	c.Likes = append([]string{}, p.Likes...)
	return &c
}

func clonePost(p *models.Post) *models.Post {
	c := *p
	c.Likes = make(map[string]bool, len(p.Likes))
	for k, v := range p.Likes {
		c.Likes[k] = v
	}
	c.Replies = append([]string{}, p.Replies...)
	return &c
}
