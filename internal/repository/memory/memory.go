// Package memory holds map-backed repositories for tests. They return the
// same error kinds as the SQL repositories.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	appErrors "github.com/unclebandit/vakinha-backend/internal/errors"
	"github.com/unclebandit/vakinha-backend/internal/model"
	"github.com/unclebandit/vakinha-backend/internal/repository"
)

type UserRepository struct {
	mu     sync.Mutex
	users  map[int64]*model.User
	nextID int64
}

func NewUserRepository() *UserRepository {
	return &UserRepository{users: map[int64]*model.User{}}
}

func (m *UserRepository) Create(_ context.Context, u *model.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.users {
		if existing.Email == u.Email {
			return appErrors.NewConflict("email already registered")
		}
	}
	m.nextID++
	u.ID = m.nextID
	u.CreatedAt = time.Now()
	stored := *u
	m.users[u.ID] = &stored
	return nil
}

// SetActive flips a stored user's active flag.
func (m *UserRepository) SetActive(id int64, active bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if u, ok := m.users[id]; ok {
		u.IsActive = active
	}
}

func (m *UserRepository) GetByID(_ context.Context, id int64) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return nil, appErrors.NewNotFound("user not found")
	}
	cp := *u
	return &cp, nil
}

func (m *UserRepository) GetByEmail(_ context.Context, email string) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, appErrors.NewNotFound("user not found")
}

type CampaignRepository struct {
	mu        sync.Mutex
	campaigns map[int64]*model.Campaign
	nextID    int64
	donations *DonationRepository
}

// NewCampaignRepository derives list totals from donations.
func NewCampaignRepository(donations *DonationRepository) *CampaignRepository {
	return &CampaignRepository{campaigns: map[int64]*model.Campaign{}, donations: donations}
}

func (m *CampaignRepository) Create(_ context.Context, c *model.Campaign) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.campaigns {
		if existing.Slug == c.Slug {
			return appErrors.NewConflict("slug already in use")
		}
	}
	m.nextID++
	c.ID = m.nextID
	stored := *c
	m.campaigns[c.ID] = &stored
	return nil
}

func (m *CampaignRepository) GetByID(_ context.Context, id int64) (*model.Campaign, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.campaigns[id]
	if !ok {
		return nil, appErrors.NewCampaignNotFound(id)
	}
	cp := *c
	return &cp, nil
}

func (m *CampaignRepository) GetBySlug(_ context.Context, slug string) (*model.Campaign, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, c := range m.campaigns {
		if c.Slug == slug {
			cp := *c
			return &cp, nil
		}
	}
	return nil, appErrors.NewNotFound("campaign %q not found", slug)
}

func (m *CampaignRepository) Update(_ context.Context, c *model.Campaign) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.campaigns[c.ID]; !ok {
		return appErrors.NewCampaignNotFound(c.ID)
	}
	stored := *c
	m.campaigns[c.ID] = &stored
	return nil
}

func (m *CampaignRepository) Delete(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.campaigns[id]; !ok {
		return appErrors.NewCampaignNotFound(id)
	}
	delete(m.campaigns, id)
	return nil
}

// ListCampaigns ignores the filter and returns newest first.
func (m *CampaignRepository) ListCampaigns(ctx context.Context, _ model.CampaignFilter, offset, limit int) ([]model.CampaignSummary, int, error) {
	m.mu.Lock()
	all := make([]model.CampaignSummary, 0, len(m.campaigns))
	for _, c := range m.campaigns {
		all = append(all, model.CampaignSummary{
			ID:         c.ID,
			Slug:       c.Slug,
			Title:      c.Title,
			GoalAmount: c.GoalAmount,
			Status:     c.Status,
		})
	}
	m.mu.Unlock()

	sort.Slice(all, func(i, j int) bool { return all[i].ID > all[j].ID })
	for i := range all {
		all[i].CurrentAmount, _ = m.donations.SumAmounts(ctx, all[i].ID)
	}

	start := offset
	end := offset + limit
	if start >= len(all) {
		return []model.CampaignSummary{}, len(all), nil
	}
	if end > len(all) {
		end = len(all)
	}
	return all[start:end], len(all), nil
}

func (m *CampaignRepository) CountByStatus(_ context.Context) (map[model.CampaignStatus]int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	counts := map[model.CampaignStatus]int{}
	for _, c := range m.campaigns {
		counts[c.Status]++
	}
	return counts, nil
}

type DonationRepository struct {
	mu        sync.Mutex
	donations []model.Donation
}

func (m *DonationRepository) Create(_ context.Context, d *model.Donation) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	d.ID = int64(len(m.donations) + 1)
	d.CreatedAt = time.Now()
	m.donations = append(m.donations, *d)
	return nil
}

func (m *DonationRepository) ListByCampaign(_ context.Context, campaignID int64) ([]model.Donation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []model.Donation{}
	for i := len(m.donations) - 1; i >= 0; i-- {
		if m.donations[i].CampaignID == campaignID {
			out = append(out, m.donations[i])
		}
	}
	return out, nil
}

func (m *DonationRepository) SumAmounts(_ context.Context, campaignID int64) (decimal.Decimal, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	total := decimal.Zero
	for _, d := range m.donations {
		if d.CampaignID == campaignID {
			total = total.Add(d.Amount)
		}
	}
	return total, nil
}

func (m *DonationRepository) CountByCampaign(_ context.Context, campaignID int64) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, d := range m.donations {
		if d.CampaignID == campaignID {
			n++
		}
	}
	return n, nil
}

type UpdateRepository struct {
	mu      sync.Mutex
	updates []model.Update
}

func (m *UpdateRepository) Create(_ context.Context, u *model.Update) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u.ID = int64(len(m.updates) + 1)
	u.CreatedAt = time.Now()
	m.updates = append(m.updates, *u)
	return nil
}

func (m *UpdateRepository) ListByCampaign(_ context.Context, campaignID int64) ([]model.Update, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []model.Update{}
	for i := len(m.updates) - 1; i >= 0; i-- {
		if m.updates[i].CampaignID == campaignID {
			out = append(out, m.updates[i])
		}
	}
	return out, nil
}

type CategoryRepository struct {
	mu         sync.Mutex
	categories []model.Category
}

func (m *CategoryRepository) List(_ context.Context) ([]model.Category, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := append([]model.Category(nil), m.categories...)
	sort.Slice(out, func(i, j int) bool { return out[i].Title < out[j].Title })
	return out, nil
}

func (m *CategoryRepository) GetByID(_ context.Context, id int64) (*model.Category, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, c := range m.categories {
		if c.ID == id {
			cp := c
			return &cp, nil
		}
	}
	return nil, appErrors.NewNotFound("category not found")
}

func (m *CategoryRepository) Create(_ context.Context, c *model.Category) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.categories {
		if existing.Title == c.Title {
			return appErrors.NewConflict("category title already exists")
		}
	}
	c.ID = int64(len(m.categories) + 1)
	c.CreatedAt = time.Now()
	m.categories = append(m.categories, *c)
	return nil
}

var (
	_ repository.UserRepositoryInterface     = (*UserRepository)(nil)
	_ repository.CampaignRepositoryInterface = (*CampaignRepository)(nil)
	_ repository.DonationRepositoryInterface = (*DonationRepository)(nil)
	_ repository.UpdateRepositoryInterface   = (*UpdateRepository)(nil)
	_ repository.CategoryRepositoryInterface = (*CategoryRepository)(nil)
)
