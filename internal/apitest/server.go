// Package apitest provides an in-memory wishlist API for tests. It follows the
// collaborating server's contract closely enough to exercise the dispatcher
// and controllers end to end.
package apitest

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/go-chi/chi/v5"
)

// Recorded captures one inbound request.
type Recorded struct {
	Method      string
	Path        string
	RawQuery    string
	ContentType string
	APIKey      string
	Body        string
}

// Failure forces a response for a method+route pattern.
type Failure struct {
	Status int
	Body   string
}

type wishlist struct {
	ID         int       `json:"id"`
	Name       string    `json:"name"`
	Owner      string    `json:"owner"`
	DateJoined string    `json:"date_joined"`
	Products   []product `json:"products"`
}

type product struct {
	ID         int    `json:"id"`
	WishlistID int    `json:"wishlist_id"`
	Name       string `json:"name"`
	Quantity   int    `json:"quantity"`
}

// Server is a fake API backed by an httptest.Server.
type Server struct {
	*httptest.Server

	mu        sync.Mutex
	nextID    int
	wishlists map[int]*wishlist
	requests  []Recorded
	failures  map[string]Failure
	apiKey    string
}

// Option configures the fake server.
type Option func(*Server)

// WithRequiredAPIKey rejects mutating requests lacking the key.
func WithRequiredAPIKey(key string) Option {
	return func(s *Server) {
		s.apiKey = key
	}
}

// New starts a fake server. Callers must Close it.
func New(options ...Option) *Server {
	s := &Server{
		nextID:    1,
		wishlists: make(map[int]*wishlist),
		failures:  make(map[string]Failure),
	}
	for _, opt := range options {
		opt(s)
	}

	r := chi.NewRouter()
	r.Use(s.record)
	r.Route("/wishlists", func(r chi.Router) {
		r.Get("/", s.listWishlists)
		r.With(s.requireKey).Post("/", s.createWishlist)
		r.Route("/{wid}", func(r chi.Router) {
			r.Get("/", s.getWishlist)
			r.With(s.requireKey).Put("/", s.updateWishlist)
			r.With(s.requireKey).Delete("/", s.deleteWishlist)
			r.With(s.requireKey).Post("/copy", s.copyWishlist)
			r.Get("/products", s.listProducts)
			r.With(s.requireKey).Post("/products", s.createProduct)
			r.Get("/products/{pid}", s.getProduct)
			r.With(s.requireKey).Put("/products/{pid}", s.updateProduct)
			r.With(s.requireKey).Delete("/products/{pid}", s.deleteProduct)
		})
	})

	s.Server = httptest.NewServer(r)
	return s
}

// Fail forces every request matching method and path to answer with f.
func (s *Server) Fail(method, path string, f Failure) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[method+" "+path] = f
}

// Requests returns the recorded requests.
func (s *Server) Requests() []Recorded {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Recorded(nil), s.requests...)
}

// LastRequest returns the most recent request.
func (s *Server) LastRequest() Recorded {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.requests) == 0 {
		return Recorded{}
	}
	return s.requests[len(s.requests)-1]
}

// SeedWishlist stores a wishlist and returns its id.
func (s *Server) SeedWishlist(name, owner, date string, productNames ...string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	w := &wishlist{ID: s.allocate(), Name: name, Owner: owner, DateJoined: date, Products: []product{}}
	for _, pn := range productNames {
		w.Products = append(w.Products, product{ID: s.allocate(), WishlistID: w.ID, Name: pn, Quantity: 1})
	}
	s.wishlists[w.ID] = w
	return w.ID
}

// ProductIDs returns the product ids of a wishlist in insertion order.
func (s *Server) ProductIDs(wishlistID int) []int {
	s.mu.Lock()
	defer s.mu.Unlock()
	w, ok := s.wishlists[wishlistID]
	if !ok {
		return nil
	}
	ids := make([]int, len(w.Products))
	for i, p := range w.Products {
		ids[i] = p.ID
	}
	return ids
}

func (s *Server) allocate() int {
	id := s.nextID
	s.nextID++
	return id
}

func (s *Server) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		r.Body = io.NopCloser(strings.NewReader(string(body)))

		s.mu.Lock()
		s.requests = append(s.requests, Recorded{
			Method:      r.Method,
			Path:        r.URL.Path,
			RawQuery:    r.URL.RawQuery,
			ContentType: r.Header.Get("Content-Type"),
			APIKey:      r.Header.Get("X-Api-Key"),
			Body:        string(body),
		})
		failure, forced := s.failures[r.Method+" "+r.URL.Path]
		s.mu.Unlock()

		if forced {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(failure.Status)
			_, _ = io.WriteString(w, failure.Body)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) requireKey(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.apiKey != "" && r.Header.Get("X-Api-Key") != s.apiKey {
			writeMessage(w, http.StatusUnauthorized, "Invalid API key")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) listWishlists(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	owner, start, end := q.Get("owner"), q.Get("start"), q.Get("end")

	s.mu.Lock()
	out := make([]wishlist, 0, len(s.wishlists))
	for _, wl := range s.wishlists {
		if owner != "" && wl.Owner != owner {
			continue
		}
		if start != "" && wl.DateJoined < start {
			continue
		}
		if end != "" && wl.DateJoined > end {
			continue
		}
		out = append(out, *wl)
	}
	s.mu.Unlock()

	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) createWishlist(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Name       *string `json:"name"`
		Owner      *string `json:"owner"`
		DateJoined *string `json:"date_joined"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil || in.Name == nil || in.Owner == nil || in.DateJoined == nil {
		writeMessage(w, http.StatusBadRequest, "Invalid Wishlist: missing fields")
		return
	}

	s.mu.Lock()
	wl := &wishlist{ID: s.allocate(), Name: *in.Name, Owner: *in.Owner, DateJoined: *in.DateJoined, Products: []product{}}
	s.wishlists[wl.ID] = wl
	out := *wl
	s.mu.Unlock()

	w.Header().Set("Location", fmt.Sprintf("/wishlists/%d", out.ID))
	writeJSON(w, http.StatusCreated, out)
}

func (s *Server) getWishlist(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	wl, ok := s.wishlistFor(r)
	var out wishlist
	if ok {
		out = *wl
	}
	s.mu.Unlock()
	if !ok {
		writeMessage(w, http.StatusNotFound, fmt.Sprintf("Wishlist with id '%s' was not found.", chi.URLParam(r, "wid")))
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) updateWishlist(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Name       string `json:"name"`
		Owner      string `json:"owner"`
		DateJoined string `json:"date_joined"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid Wishlist: bad body")
		return
	}

	s.mu.Lock()
	wl, ok := s.wishlistFor(r)
	var out wishlist
	if ok {
		wl.Name, wl.Owner, wl.DateJoined = in.Name, in.Owner, in.DateJoined
		out = *wl
	}
	s.mu.Unlock()
	if !ok {
		writeMessage(w, http.StatusNotFound, "Wishlist not found")
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) deleteWishlist(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	if wl, ok := s.wishlistFor(r); ok {
		delete(s.wishlists, wl.ID)
	}
	s.mu.Unlock()
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) copyWishlist(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	src, ok := s.wishlistFor(r)
	var out wishlist
	if ok {
		cp := &wishlist{ID: s.allocate(), Name: src.Name + " COPY", Owner: src.Owner, DateJoined: src.DateJoined, Products: []product{}}
		for _, p := range src.Products {
			cp.Products = append(cp.Products, product{ID: s.allocate(), WishlistID: cp.ID, Name: p.Name, Quantity: p.Quantity})
		}
		s.wishlists[cp.ID] = cp
		out = *cp
	}
	s.mu.Unlock()
	if !ok {
		writeMessage(w, http.StatusNotFound, "Wishlist not found")
		return
	}
	writeJSON(w, http.StatusCreated, out)
}

func (s *Server) listProducts(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	wl, ok := s.wishlistFor(r)
	var out []product
	if ok {
		out = append([]product{}, wl.Products...)
	}
	s.mu.Unlock()
	if !ok {
		writeMessage(w, http.StatusNotFound, "Wishlist not found")
		return
	}
	writeJSON(w, http.StatusOK, out)
}

type productInput struct {
	Name     string `json:"name"`
	Quantity string `json:"quantity"`
}

func (in productInput) quantity() (int, error) {
	if strings.TrimSpace(in.Quantity) == "" {
		return 0, nil
	}
	q, err := strconv.Atoi(strings.TrimSpace(in.Quantity))
	if err != nil || q < 0 {
		return 0, fmt.Errorf("invalid quantity %q", in.Quantity)
	}
	return q, nil
}

func (s *Server) createProduct(w http.ResponseWriter, r *http.Request) {
	var in productInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid Product: bad body")
		return
	}
	qty, err := in.quantity()
	if err != nil {
		writeMessage(w, http.StatusBadRequest, err.Error())
		return
	}

	s.mu.Lock()
	wl, ok := s.wishlistFor(r)
	var out product
	if ok {
		out = product{ID: s.allocate(), WishlistID: wl.ID, Name: in.Name, Quantity: qty}
		wl.Products = append(wl.Products, out)
	}
	s.mu.Unlock()
	if !ok {
		writeMessage(w, http.StatusNotFound, "Wishlist not found")
		return
	}
	writeJSON(w, http.StatusCreated, out)
}

func (s *Server) getProduct(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	p, ok := s.productFor(r)
	var out product
	if ok {
		out = *p
	}
	s.mu.Unlock()
	if !ok {
		writeMessage(w, http.StatusNotFound, "Product not found")
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) updateProduct(w http.ResponseWriter, r *http.Request) {
	var in productInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid Product: bad body")
		return
	}
	qty, err := in.quantity()
	if err != nil {
		writeMessage(w, http.StatusBadRequest, err.Error())
		return
	}

	s.mu.Lock()
	p, ok := s.productFor(r)
	var out product
	if ok {
		p.Name, p.Quantity = in.Name, qty
		out = *p
	}
	s.mu.Unlock()
	if !ok {
		writeMessage(w, http.StatusNotFound, "Product not found")
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) deleteProduct(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	wl, ok := s.wishlistFor(r)
	if ok {
		pid, _ := strconv.Atoi(chi.URLParam(r, "pid"))
		kept := wl.Products[:0]
		for _, p := range wl.Products {
			if p.ID != pid {
				kept = append(kept, p)
			}
		}
		wl.Products = kept
	}
	s.mu.Unlock()
	if !ok {
		writeMessage(w, http.StatusNotFound, "Wishlist not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// wishlistFor must be called with s.mu held.
func (s *Server) wishlistFor(r *http.Request) (*wishlist, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, "wid"))
	if err != nil {
		return nil, false
	}
	wl, ok := s.wishlists[id]
	return wl, ok
}

// productFor must be called with s.mu held.
func (s *Server) productFor(r *http.Request) (*product, bool) {
	wl, ok := s.wishlistFor(r)
	if !ok {
		return nil, false
	}
	pid, err := strconv.Atoi(chi.URLParam(r, "pid"))
	if err != nil {
		return nil, false
	}
	for i := range wl.Products {
		if wl.Products[i].ID == pid {
			return &wl.Products[i], true
		}
	}
	return nil, false
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeMessage(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"message": msg})
}
