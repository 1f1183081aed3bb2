package testutil

import (
	"context"
	"sort"
	"sync"

	"github.com/deppfellow/product-catalog/internal/model"
)

// ProductStore is an in-memory product repository with database-like key assignment.
//
// Err, when set, is returned by every call to simulate a store failure.
type ProductStore struct {
	mu       sync.Mutex
	products map[int64]model.Product
	nextID   int64

	Err error
}

func NewProductStore(seed ...model.Product) *ProductStore {
	s := &ProductStore{products: make(map[int64]model.Product)}
	for _, p := range seed {
		if _, err := s.Save(context.Background(), &p); err != nil {
			panic(err)
		}
	}
	return s
}

func (s *ProductStore) FindAll(_ context.Context) ([]model.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.Err != nil {
		return nil, s.Err
	}

	products := make([]model.Product, 0, len(s.products))
	for _, p := range s.products {
		products = append(products, p)
	}
	sort.Slice(products, func(i, j int) bool { return products[i].ID < products[j].ID })
	return products, nil
}

func (s *ProductStore) FindByID(_ context.Context, id int64) (model.Product, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.Err != nil {
		return model.Product{}, false, s.Err
	}

	p, ok := s.products[id]
	return p, ok, nil
}

// Save assigns the next id when the key is zero and upserts otherwise.
func (s *ProductStore) Save(_ context.Context, p *model.Product) (*model.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.Err != nil {
		return nil, s.Err
	}

	if p.ID == 0 {
		s.nextID++
		p.ID = s.nextID
	} else if p.ID > s.nextID {
		s.nextID = p.ID
	}

	s.products[p.ID] = *p
	return p, nil
}

func (s *ProductStore) Delete(_ context.Context, p *model.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.Err != nil {
		return s.Err
	}

	delete(s.products, p.ID)
	return nil
}

// Len returns the number of stored products.
func (s *ProductStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.products)
}
