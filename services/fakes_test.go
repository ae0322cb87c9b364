package services_test

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/Maharshi2203/Sattys-main/models"
	"github.com/Maharshi2203/Sattys-main/repository"
	"gorm.io/gorm"
)

// --- Products ---

type fakeProductRepo struct {
	mu       sync.Mutex
	products map[uint]*models.Product
	nextID   uint
	failWith error
}

func newFakeProductRepo(seed ...models.Product) *fakeProductRepo {
	r := &fakeProductRepo{products: map[uint]*models.Product{}}
	for i := range seed {
		p := seed[i]
		if p.ID == 0 {
			r.nextID++
			p.ID = r.nextID
		} else if p.ID > r.nextID {
			r.nextID = p.ID
		}
		r.products[p.ID] = &p
	}
	return r
}

func (r *fakeProductRepo) Create(_ context.Context, p *models.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failWith != nil {
		return r.failWith
	}
	r.nextID++
	p.ID = r.nextID
	cp := *p
	r.products[p.ID] = &cp
	return nil
}

func (r *fakeProductRepo) FindByID(_ context.Context, id uint) (*models.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.products[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *fakeProductRepo) FindByIDs(_ context.Context, ids []uint) ([]models.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failWith != nil {
		return nil, r.failWith
	}
	var out []models.Product
	for _, id := range ids {
		if p, ok := r.products[id]; ok && p.IsActive {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *fakeProductRepo) FindAll(_ context.Context, _ repository.ProductFilter) ([]models.Product, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failWith != nil {
		return nil, 0, r.failWith
	}
	out := make([]models.Product, 0, len(r.products))
	for _, p := range r.products {
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, int64(len(out)), nil
}

func (r *fakeProductRepo) Update(_ context.Context, p *models.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.products[p.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	cp := *p
	r.products[p.ID] = &cp
	return nil
}

func (r *fakeProductRepo) Delete(_ context.Context, id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.products[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(r.products, id)
	return nil
}

func (r *fakeProductRepo) CodesInCategory(_ context.Context, categoryID uint) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var codes []string
	for _, p := range r.products {
		if p.CategoryID != nil && *p.CategoryID == categoryID && p.ProductCode != nil {
			codes = append(codes, *p.ProductCode)
		}
	}
	return codes, nil
}

func (r *fakeProductRepo) CountByCategory(_ context.Context, categoryID uint) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, p := range r.products {
		if p.CategoryID != nil && *p.CategoryID == categoryID {
			n++
		}
	}
	return n, nil
}

func (r *fakeProductRepo) Count(_ context.Context, stock models.StockStatus) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, p := range r.products {
		if stock == "" || p.StockStatus == stock {
			n++
		}
	}
	return n, nil
}

func (r *fakeProductRepo) Recent(_ context.Context, limit int) ([]models.Product, error) {
	all, _, err := r.FindAll(context.Background(), repository.ProductFilter{})
	if err != nil {
		return nil, err
	}
	if len(all) > limit {
		all = all[:limit]
	}
	return all, nil
}

func (r *fakeProductRepo) len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.products)
}

// --- Categories ---

type fakeCategoryRepo struct {
	mu     sync.Mutex
	cats   map[uint]*models.Category
	nextID uint
}

func newFakeCategoryRepo(names ...string) *fakeCategoryRepo {
	r := &fakeCategoryRepo{cats: map[uint]*models.Category{}}
	for _, n := range names {
		_ = r.Create(context.Background(), &models.Category{Name: n})
	}
	return r
}

func (r *fakeCategoryRepo) Create(_ context.Context, c *models.Category) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.cats {
		if strings.EqualFold(existing.Name, c.Name) {
			return gorm.ErrDuplicatedKey
		}
	}
	r.nextID++
	c.ID = r.nextID
	cp := *c
	r.cats[c.ID] = &cp
	return nil
}

func (r *fakeCategoryRepo) FindAll(_ context.Context) ([]models.Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]models.Category, 0, len(r.cats))
	for _, c := range r.cats {
		out = append(out, *c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *fakeCategoryRepo) FindByID(_ context.Context, id uint) (*models.Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.cats[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *c
	return &cp, nil
}

func (r *fakeCategoryRepo) FindByName(_ context.Context, name string) (*models.Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.cats {
		if strings.EqualFold(c.Name, strings.TrimSpace(name)) {
			cp := *c
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeCategoryRepo) Update(_ context.Context, c *models.Category) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.cats[c.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	cp := *c
	r.cats[c.ID] = &cp
	return nil
}

func (r *fakeCategoryRepo) Delete(_ context.Context, id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.cats[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(r.cats, id)
	return nil
}

func (r *fakeCategoryRepo) Count(_ context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.cats)), nil
}

// --- Reviews ---

type fakeReviewRepo struct {
	reviews map[uint]*models.Review
	nextID  uint
}

func newFakeReviewRepo() *fakeReviewRepo {
	return &fakeReviewRepo{reviews: map[uint]*models.Review{}}
}

func (r *fakeReviewRepo) Create(_ context.Context, rv *models.Review) error {
	r.nextID++
	rv.ID = r.nextID
	rv.CreatedAt = time.Now()
	cp := *rv
	r.reviews[rv.ID] = &cp
	return nil
}

func (r *fakeReviewRepo) FindByID(_ context.Context, id uint) (*models.Review, error) {
	rv, ok := r.reviews[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *rv
	return &cp, nil
}

func (r *fakeReviewRepo) FindApproved(_ context.Context, productID uint, _ models.ReviewSort) ([]models.Review, error) {
	var out []models.Review
	for _, rv := range r.reviews {
		if rv.ProductID == productID && rv.IsApproved {
			out = append(out, *rv)
		}
	}
	return out, nil
}

func (r *fakeReviewRepo) ExistsForEmail(_ context.Context, productID uint, email string) (bool, error) {
	for _, rv := range r.reviews {
		if rv.ProductID == productID && rv.UserEmail != nil && *rv.UserEmail == email {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeReviewRepo) IncrementHelpful(_ context.Context, id uint) error {
	rv, ok := r.reviews[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	rv.HelpfulCount++
	return nil
}

func (r *fakeReviewRepo) SetApproved(_ context.Context, id uint, approved bool) error {
	rv, ok := r.reviews[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	rv.IsApproved = approved
	return nil
}

func (r *fakeReviewRepo) Delete(_ context.Context, id uint) error {
	if _, ok := r.reviews[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(r.reviews, id)
	return nil
}

// --- Admins ---

type fakeAdminRepo struct {
	users   map[string]*models.AdminUser
	creates int
}

func newFakeAdminRepo() *fakeAdminRepo {
	return &fakeAdminRepo{users: map[string]*models.AdminUser{}}
}

func (r *fakeAdminRepo) Create(_ context.Context, u *models.AdminUser) error {
	r.creates++
	u.ID = uint(len(r.users) + 1)
	cp := *u
	r.users[u.Username] = &cp
	return nil
}

func (r *fakeAdminRepo) FindByUsername(_ context.Context, username string) (*models.AdminUser, error) {
	u, ok := r.users[username]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *u
	return &cp, nil
}

// --- Contacts ---

type fakeContactRepo struct {
	msgs   map[uint]*models.ContactMessage
	nextID uint
}

func newFakeContactRepo() *fakeContactRepo {
	return &fakeContactRepo{msgs: map[uint]*models.ContactMessage{}}
}

func (r *fakeContactRepo) Create(_ context.Context, m *models.ContactMessage) error {
	r.nextID++
	m.ID = r.nextID
	cp := *m
	r.msgs[m.ID] = &cp
	return nil
}

func (r *fakeContactRepo) FindAll(_ context.Context, _, _ int) ([]models.ContactMessage, int64, error) {
	var out []models.ContactMessage
	for _, m := range r.msgs {
		out = append(out, *m)
	}
	return out, int64(len(out)), nil
}

func (r *fakeContactRepo) MarkRead(_ context.Context, id uint) error {
	m, ok := r.msgs[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	m.IsRead = true
	return nil
}

func (r *fakeContactRepo) Delete(_ context.Context, id uint) error {
	if _, ok := r.msgs[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(r.msgs, id)
	return nil
}

func (r *fakeContactRepo) CountUnread(_ context.Context) (int64, error) {
	var n int64
	for _, m := range r.msgs {
		if !m.IsRead {
			n++
		}
	}
	return n, nil
}

// --- SNS ---

type publishedEvent struct {
	topicArn  string
	eventType string
	message   []byte
}

type fakePublisher struct {
	mu     sync.Mutex
	events []publishedEvent
	err    error
}

func (p *fakePublisher) Publish(_ context.Context, topicArn, eventType string, message []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.events = append(p.events, publishedEvent{topicArn, eventType, message})
	return nil
}

func (p *fakePublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.eventType)
	}
	return out
}

// --- Metrics ---

type fakeMetrics struct {
	mu     sync.Mutex
	counts map[string]int
}

func newFakeMetrics() *fakeMetrics { return &fakeMetrics{counts: map[string]int{}} }

func (m *fakeMetrics) RecordCount(_ context.Context, name string, _ map[string]string) error {
	return m.RecordCountN(context.Background(), name, 1, nil)
}

func (m *fakeMetrics) RecordCountN(_ context.Context, name string, n int, _ map[string]string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.counts[name] += n
	return nil
}

func (m *fakeMetrics) RecordLatency(_ context.Context, name string, _ time.Duration, _ map[string]string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.counts[name]++
	return nil
}

func (m *fakeMetrics) count(name string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.counts[name]
}

var errBoom = errors.New("boom")

func uintPtr(v uint) *uint        { return &v }
func floatPtr(v float64) *float64 { return &v }
func strPtr(v string) *string     { return &v }
