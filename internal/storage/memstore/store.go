// Package memstore is the in-memory storage.Storage backend. It backs unit
// tests and the STORAGE=memory development mode; collections are id-indexed
// maps behind a single mutex.
package memstore

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/dreamnest/shop-backend/internal/models"
	"github.com/dreamnest/shop-backend/internal/storage"
)

type Store struct {
	mu sync.Mutex

	products  map[uint]models.Product
	cartItems map[uint]models.CartItem
	orders    map[uint]models.Order
	items     map[uint]models.OrderItem
	users     map[uint]models.User
	sessions  map[string]models.Session
	settings  map[string]models.Setting

	nextProduct  uint
	nextCartItem uint
	nextOrder    uint
	nextItem     uint
	nextUser     uint
	nextSession  uint
	nextSetting  uint
}

func New() *Store {
	return &Store{
		products:  make(map[uint]models.Product),
		cartItems: make(map[uint]models.CartItem),
		orders:    make(map[uint]models.Order),
		items:     make(map[uint]models.OrderItem),
		users:     make(map[uint]models.User),
		sessions:  make(map[string]models.Session),
		settings:  make(map[string]models.Setting),
	}
}

func (s *Store) ListProducts(_ context.Context, filter storage.ProductFilter) ([]models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []models.Product
	for _, p := range s.products {
		if filter.Category != "" && p.Category != filter.Category {
			continue
		}
		if filter.Featured != nil && p.Featured != *filter.Featured {
			continue
		}
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *Store) GetProduct(_ context.Context, id uint) (*models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.products[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return &p, nil
}

func (s *Store) CreateProduct(_ context.Context, p *models.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextProduct++
	p.ID = s.nextProduct
	p.CreatedAt = time.Now()
	p.UpdatedAt = p.CreatedAt
	s.products[p.ID] = *p
	return nil
}

func (s *Store) UpdateProduct(_ context.Context, p *models.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.products[p.ID]; !ok {
		return storage.ErrNotFound
	}
	p.UpdatedAt = time.Now()
	s.products[p.ID] = *p
	return nil
}

func (s *Store) DeleteProduct(_ context.Context, id uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.products, id)
	return nil
}

func (s *Store) SearchProducts(_ context.Context, query string, offset, limit int) ([]models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	q := strings.ToLower(query)
	var out []models.Product
	for _, p := range s.products {
		if strings.Contains(strings.ToLower(p.Name), q) ||
			strings.Contains(strings.ToLower(p.Description), q) {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	if offset >= len(out) {
		return nil, nil
	}
	out = out[offset:]
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *Store) GetCartItems(_ context.Context, sessionID string) ([]models.CartItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []models.CartItem
	for _, it := range s.cartItems {
		if it.SessionID == sessionID {
			out = append(out, it)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *Store) GetCartItem(_ context.Context, id uint) (*models.CartItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	it, ok := s.cartItems[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return &it, nil
}

func (s *Store) FindCartItem(_ context.Context, key storage.CartKey) (*models.CartItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var found *models.CartItem
	for _, it := range s.cartItems {
		if !matches(it, key) {
			continue
		}
		if found == nil || it.ID < found.ID {
			it := it
			found = &it
		}
	}
	if found == nil {
		return nil, storage.ErrNotFound
	}
	return found, nil
}

func matches(it models.CartItem, key storage.CartKey) bool {
	if it.SessionID != key.SessionID ||
		it.ProductID != key.ProductID ||
		it.SelectedSize != key.SelectedSize ||
		it.SelectedFabricCategory != key.SelectedFabricCategory ||
		it.SelectedFabric != key.SelectedFabric ||
		it.HasLiftingMechanism != key.HasLiftingMechanism {
		return false
	}
	if key.MatchCustomDimensions {
		if !intPtrEqual(it.CustomWidth, key.CustomWidth) || !intPtrEqual(it.CustomLength, key.CustomLength) {
			return false
		}
	}
	return true
}

func intPtrEqual(a, b *int) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func (s *Store) CreateCartItem(_ context.Context, item *models.CartItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextCartItem++
	item.ID = s.nextCartItem
	item.CreatedAt = time.Now()
	s.cartItems[item.ID] = *item
	return nil
}

func (s *Store) SaveCartItem(_ context.Context, item *models.CartItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.cartItems[item.ID]; !ok {
		return storage.ErrNotFound
	}
	s.cartItems[item.ID] = *item
	return nil
}

func (s *Store) DeleteCartItem(_ context.Context, id uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.cartItems, id)
	return nil
}

func (s *Store) ClearCart(_ context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, it := range s.cartItems {
		if it.SessionID == sessionID {
			delete(s.cartItems, id)
		}
	}
	return nil
}

func (s *Store) CreateOrder(_ context.Context, o *models.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextOrder++
	o.ID = s.nextOrder
	o.CreatedAt = time.Now()
	s.orders[o.ID] = *o
	return nil
}

func (s *Store) CreateOrderItem(_ context.Context, item *models.OrderItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextItem++
	item.ID = s.nextItem
	s.items[item.ID] = *item
	return nil
}

func (s *Store) GetOrder(_ context.Context, id uint) (*models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	o, ok := s.orders[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return &o, nil
}

func (s *Store) GetOrderItems(_ context.Context, orderID uint) ([]models.OrderItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []models.OrderItem
	for _, it := range s.items {
		if it.OrderID == orderID {
			out = append(out, it)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *Store) ListOrders(_ context.Context, sessionID string) ([]models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []models.Order
	for _, o := range s.orders {
		if o.SessionID == sessionID {
			out = append(out, o)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (s *Store) ListAllOrders(_ context.Context) ([]models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []models.Order
	for _, o := range s.orders {
		out = append(out, o)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (s *Store) UpdateOrderStatus(_ context.Context, id uint, status string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	o, ok := s.orders[id]
	if !ok {
		return storage.ErrNotFound
	}
	o.Status = status
	s.orders[id] = o
	return nil
}

func (s *Store) GetUser(_ context.Context, id uint) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return &u, nil
}

func (s *Store) GetUserByUsername(_ context.Context, username string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Username == username {
			u := u
			return &u, nil
		}
	}
	return nil, storage.ErrNotFound
}

func (s *Store) ListUsers(_ context.Context) ([]models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []models.User
	for _, u := range s.users {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *Store) CreateUser(_ context.Context, u *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextUser++
	u.ID = s.nextUser
	u.CreatedAt = time.Now()
	s.users[u.ID] = *u
	return nil
}

func (s *Store) UpdateUser(_ context.Context, u *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[u.ID]; !ok {
		return storage.ErrNotFound
	}
	s.users[u.ID] = *u
	return nil
}

func (s *Store) DeleteUser(_ context.Context, id uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.users, id)
	return nil
}

func (s *Store) GetSession(_ context.Context, token string) (*models.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[token]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return &sess, nil
}

func (s *Store) SaveSession(_ context.Context, sess *models.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if existing, ok := s.sessions[sess.Token]; ok {
		sess.ID = existing.ID
	} else {
		s.nextSession++
		sess.ID = s.nextSession
		sess.CreatedAt = time.Now()
	}
	s.sessions[sess.Token] = *sess
	return nil
}

func (s *Store) DeleteSession(_ context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.sessions, token)
	return nil
}

func (s *Store) ListSettings(_ context.Context) ([]models.Setting, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []models.Setting
	for _, v := range s.settings {
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out, nil
}

func (s *Store) UpsertSetting(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if existing, ok := s.settings[key]; ok {
		existing.Value = value
		s.settings[key] = existing
		return nil
	}
	s.nextSetting++
	s.settings[key] = models.Setting{ID: s.nextSetting, Key: key, Value: value}
	return nil
}
