package usecase

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	"peermarket/internal/domain/entity"
	"peermarket/internal/domain/repository"
	"peermarket/pkg/errors"
)

// In-memory collaborators for exercising the use cases without Firestore.

func appErrorCode(err error, code string) bool {
	return errors.Is(err, code)
}

type fakeMessageRepo struct {
	mu       sync.Mutex
	messages []*entity.Message
	seq      int
	now      time.Time
}

func newFakeMessageRepo() *fakeMessageRepo {
	return &fakeMessageRepo{now: time.Unix(1000, 0)}
}

func (r *fakeMessageRepo) Create(ctx context.Context, message *entity.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.seq++
	message.ID = "m" + strconv.Itoa(r.seq)
	r.now = r.now.Add(time.Second)
	message.CreatedAt = r.now
	message.Read = false

	stored := *message
	r.messages = append(r.messages, &stored)
	return nil
}

func (r *fakeMessageRepo) ListByParticipant(ctx context.Context, userID string) ([]*entity.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var result []*entity.Message
	for _, m := range r.messages {
		if m.SenderID == userID || m.ReceiverID == userID {
			copied := *m
			result = append(result, &copied)
		}
	}
	return result, nil
}

func (r *fakeMessageRepo) ListConversation(ctx context.Context, userA, userB, productID string) ([]*entity.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var result []*entity.Message
	for _, m := range r.messages {
		pair := (m.SenderID == userA && m.ReceiverID == userB) || (m.SenderID == userB && m.ReceiverID == userA)
		if pair && m.ProductID == productID {
			copied := *m
			result = append(result, &copied)
		}
	}
	return result, nil
}

func (r *fakeMessageRepo) MarkConversationRead(ctx context.Context, receiverID, senderID, productID string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var count int64
	for _, m := range r.messages {
		if m.ReceiverID == receiverID && m.SenderID == senderID && m.ProductID == productID && !m.Read {
			m.Read = true
			count++
		}
	}
	return count, nil
}

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[string]*entity.User
}

func newFakeUserRepo(users ...*entity.User) *fakeUserRepo {
	r := &fakeUserRepo{users: make(map[string]*entity.User)}
	for _, u := range users {
		r.users[u.ID] = u
	}
	return r
}

func (r *fakeUserRepo) Create(ctx context.Context, user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[id]
	if !ok {
		return nil, errors.NotFound("User", nil)
	}
	copied := *user
	return &copied, nil
}

func (r *fakeUserRepo) Update(ctx context.Context, user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[user.ID]; !ok {
		return errors.NotFound("User", nil)
	}
	r.users[user.ID] = user
	return nil
}

type fakeProductRepo struct {
	mu       sync.Mutex
	products map[string]*entity.Product
	seq      int
}

func newFakeProductRepo(products ...*entity.Product) *fakeProductRepo {
	r := &fakeProductRepo{products: make(map[string]*entity.Product)}
	for _, p := range products {
		r.products[p.ID] = p
	}
	return r
}

func (r *fakeProductRepo) Create(ctx context.Context, product *entity.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if product.ID == "" {
		r.seq++
		product.ID = fmt.Sprintf("p%d", r.seq)
	}
	if product.Status == "" {
		product.Status = "active"
	}
	product.CreatedAt = time.Now()
	copied := *product
	r.products[product.ID] = &copied
	return nil
}

func (r *fakeProductRepo) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	product, ok := r.products[id]
	if !ok {
		return nil, errors.NotFound("Product", nil)
	}
	copied := *product
	return &copied, nil
}

func (r *fakeProductRepo) List(ctx context.Context, filter repository.ProductFilter, limit, offset int) ([]*entity.Product, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []*entity.Product
	for _, p := range r.products {
		if p.Status == "active" && p.DeletedAt == nil {
			copied := *p
			result = append(result, &copied)
		}
	}
	return result, int64(len(result)), nil
}

func (r *fakeProductRepo) ListBySellerID(ctx context.Context, sellerID string, status string, limit, offset int) ([]*entity.Product, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []*entity.Product
	for _, p := range r.products {
		if p.SellerID != sellerID || p.DeletedAt != nil {
			continue
		}
		if status != "" && p.Status != status {
			continue
		}
		copied := *p
		result = append(result, &copied)
	}
	return result, int64(len(result)), nil
}

func (r *fakeProductRepo) Update(ctx context.Context, product *entity.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.products[product.ID]; !ok {
		return errors.NotFound("Product", nil)
	}
	copied := *product
	r.products[product.ID] = &copied
	return nil
}

func (r *fakeProductRepo) SoftDelete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	product, ok := r.products[id]
	if !ok {
		return errors.NotFound("Product", nil)
	}
	now := time.Now()
	product.DeletedAt = &now
	product.Status = "deleted"
	return nil
}

func (r *fakeProductRepo) IncrementViews(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if product, ok := r.products[id]; ok {
		product.Views++
	}
	return nil
}

type fakeRatingRepo struct {
	mu      sync.Mutex
	ratings map[string]*entity.Rating
}

func newFakeRatingRepo() *fakeRatingRepo {
	return &fakeRatingRepo{ratings: make(map[string]*entity.Rating)}
}

func fakeRatingKey(buyerID, sellerID, productID string) string {
	return buyerID + "_" + sellerID + "_" + productID
}

func (r *fakeRatingRepo) Create(ctx context.Context, rating *entity.Rating) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	rating.ID = fakeRatingKey(rating.BuyerID, rating.SellerID, rating.ProductID)
	rating.CreatedAt = time.Now()
	rating.UpdatedAt = rating.CreatedAt
	copied := *rating
	r.ratings[rating.ID] = &copied
	return nil
}

func (r *fakeRatingRepo) Update(ctx context.Context, rating *entity.Rating) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	rating.UpdatedAt = time.Now()
	copied := *rating
	r.ratings[rating.ID] = &copied
	return nil
}

func (r *fakeRatingRepo) GetByBuyerSellerProduct(ctx context.Context, buyerID, sellerID, productID string) (*entity.Rating, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rating, ok := r.ratings[fakeRatingKey(buyerID, sellerID, productID)]
	if !ok {
		return nil, errors.NotFound("Rating", nil)
	}
	copied := *rating
	return &copied, nil
}

func (r *fakeRatingRepo) ListBySellerID(ctx context.Context, sellerID string, limit, offset int) ([]*entity.Rating, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []*entity.Rating
	for _, rating := range r.ratings {
		if rating.SellerID == sellerID {
			copied := *rating
			result = append(result, &copied)
		}
	}
	return result, int64(len(result)), nil
}

type fakeNotifier struct {
	mu       sync.Mutex
	payloads map[string][][]byte
}

func newFakeNotifier() *fakeNotifier {
	return &fakeNotifier{payloads: make(map[string][][]byte)}
}

func (n *fakeNotifier) SendToUser(userID string, payload []byte) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.payloads[userID] = append(n.payloads[userID], payload)
}

func (n *fakeNotifier) sent(userID string) int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.payloads[userID])
}

type fakeLimiter struct {
	allowed bool
}

func (l *fakeLimiter) Allow(userID, action string) (bool, time.Duration) {
	if l.allowed {
		return true, 0
	}
	return false, 6 * time.Second
}

func allowAll() *fakeLimiter {
	return &fakeLimiter{allowed: true}
}
