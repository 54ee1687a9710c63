package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"

	domcart "example.com/fastshop/internal/domain/cart"
	domcategory "example.com/fastshop/internal/domain/category"
	domproduct "example.com/fastshop/internal/domain/product"
	cartuc "example.com/fastshop/internal/usecase/cart"
	categoryuc "example.com/fastshop/internal/usecase/category"
	productuc "example.com/fastshop/internal/usecase/product"
)

var (
	errInternal      = errors.New("internal server error")
	errRouteNotFound = errors.New("route not found")
	errTrailingData  = errors.New("request body must contain a single JSON object")
)

type API struct {
	appName     string
	categorySvc *categoryuc.Service
	productSvc  *productuc.Service
	cartSvc     *cartuc.Service
	validator   *validator.Validate
	log         logrus.FieldLogger
	corsOrigins []string
	staticDir   string
}

type Dependencies struct {
	AppName         string
	CategoryService *categoryuc.Service
	ProductService  *productuc.Service
	CartService     *cartuc.Service
	Logger          logrus.FieldLogger
	CORSOrigins     []string
	// StaticDir holds the built single-page app; empty disables it.
	StaticDir string
}

func NewAPI(deps Dependencies) *API {
	validate := validator.New()
	log := deps.Logger
	if log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		log = l
	}
	return &API{
		appName:     deps.AppName,
		categorySvc: deps.CategoryService,
		productSvc:  deps.ProductService,
		cartSvc:     deps.CartService,
		validator:   validate,
		log:         log,
		corsOrigins: deps.CORSOrigins,
		staticDir:   deps.StaticDir,
	}
}

func (a *API) Router() chi.Router {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.RequestLogger(&logFormatter{log: a.log}))
	r.Use(chimw.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   a.corsOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
	})

	r.Route("/api", func(r chi.Router) {
		r.Use(chimw.AllowContentType("application/json", "text/plain"))
		r.NotFound(func(w http.ResponseWriter, r *http.Request) {
			respondError(w, http.StatusNotFound, errRouteNotFound)
		})

		r.Get("/products", a.handleListProducts)
		r.Get("/products/{id}", a.handleGetProduct)
		r.Get("/products/category/{id}", a.handleListProductsByCategory)

		r.Get("/categories", a.handleListCategories)
		r.Get("/categories/{id}", a.handleGetCategory)

		r.Route("/cart", func(cr chi.Router) {
			cr.Post("/", a.handleGetCart)
			cr.Post("/add", a.handleAddCartItem)
			cr.Put("/update", a.handleUpdateCartItem)
			cr.Delete("/remove/{product_id}", a.handleRemoveCartItem)
		})
	})

	if a.staticDir != "" {
		r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.Dir(a.staticDir))))
	}
	r.NotFound(a.handleSPA)

	return r
}

// decodeAndValidate reads a JSON body into dst. An empty body leaves dst at
// its zero value so that an omitted cart means the empty cart.
func (a *API) decodeAndValidate(r *http.Request, dst any) error {
	defer r.Body.Close()
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	err := dec.Decode(dst)
	switch {
	case errors.Is(err, io.EOF):
	case err != nil:
		return err
	default:
		if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
			return errTrailingData
		}
	}
	return a.validator.Struct(dst)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

type errorResponse struct {
	Error   string `json:"error"`
	Details any    `json:"details,omitempty"`
}

type fieldError struct {
	Field string `json:"field"`
	Rule  string `json:"rule"`
	Param string `json:"param,omitempty"`
}

func respondError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, errorResponse{Error: err.Error()})
}

// respondBadRequest answers a body that failed to decode (400) or failed
// schema validation (422).
func respondBadRequest(w http.ResponseWriter, err error) {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		respondError(w, http.StatusBadRequest, err)
		return
	}
	details := make([]fieldError, 0, len(verrs))
	for _, fe := range verrs {
		details = append(details, fieldError{
			Field: fe.Namespace(),
			Rule:  fe.Tag(),
			Param: fe.Param(),
		})
	}
	writeJSON(w, http.StatusUnprocessableEntity, errorResponse{
		Error:   "validation failed",
		Details: details,
	})
}

func parseIDParam(r *http.Request, key string) (int64, error) {
	idStr := chi.URLParam(r, key)
	return strconv.ParseInt(idStr, 10, 64)
}

func mapCategory(c *domcategory.Category) map[string]any {
	return map[string]any{
		"id":          c.ID,
		"name":        c.Name,
		"slug":        c.Slug,
		"description": nullable(c.Description),
	}
}

func mapProduct(p *domproduct.Product) map[string]any {
	out := map[string]any{
		"id":          p.ID,
		"name":        p.Name,
		"description": nullable(p.Description),
		"price":       p.Price,
		"category_id": p.CategoryID,
		"image_url":   nullable(p.ImageURL),
		"created_at":  p.CreatedAt,
	}
	if p.Category != nil {
		out["category"] = mapCategory(p.Category)
	}
	return out
}

func mapProducts(products []*domproduct.Product) map[string]any {
	resp := make([]map[string]any, 0, len(products))
	for _, p := range products {
		resp = append(resp, mapProduct(p))
	}
	return map[string]any{
		"products": resp,
		"total":    len(resp),
	}
}

func mapCart(c domcart.Cart) map[string]any {
	if c == nil {
		c = domcart.Cart{}
	}
	return map[string]any{"cart": c}
}

func mapCartDetails(d *domcart.Details) map[string]any {
	items := make([]map[string]any, 0, len(d.Items))
	for _, item := range d.Items {
		items = append(items, map[string]any{
			"product_id": item.ProductID,
			"name":       item.Name,
			"price":      item.Price.InexactFloat64(),
			"quantity":   item.Quantity,
			"subtotal":   item.Subtotal.InexactFloat64(),
			"image_url":  nullable(item.ImageURL),
		})
	}
	return map[string]any{
		"items":       items,
		"total":       d.Total.InexactFloat64(),
		"items_count": d.ItemsCount,
	}
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func (a *API) handleDomainError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domcart.ErrInvalidQuantity),
		errors.Is(err, domcart.ErrInvalidProductID),
		errors.Is(err, domcart.ErrQuantityTooLarge):
		respondError(w, http.StatusUnprocessableEntity, err)
	case errors.Is(err, domproduct.ErrProductNotFound),
		errors.Is(err, domcategory.ErrCategoryNotFound),
		errors.Is(err, domcart.ErrItemNotInCart):
		respondError(w, http.StatusNotFound, err)
	default:
		a.log.WithError(err).WithFields(logrus.Fields{
			"method":     r.Method,
			"path":       r.URL.Path,
			"request_id": chimw.GetReqID(r.Context()),
		}).Error("request failed")
		respondError(w, http.StatusInternalServerError, errInternal)
	}
}
