package http

import (
	"net/http"

	domcart "example.com/fastshop/internal/domain/cart"
)

type cartRequest struct {
	Cart domcart.Cart `json:"cart" validate:"omitempty,dive,keys,gt=0,endkeys,gt=0"`
}

type cartItemRequest struct {
	ProductID int64        `json:"product_id" validate:"required,gt=0"`
	Quantity  int64        `json:"quantity" validate:"required,gt=0"`
	Cart      domcart.Cart `json:"cart" validate:"omitempty,dive,keys,gt=0,endkeys,gt=0"`
}

func (a *API) handleAddCartItem(w http.ResponseWriter, r *http.Request) {
	var req cartItemRequest
	if err := a.decodeAndValidate(r, &req); err != nil {
		respondBadRequest(w, err)
		return
	}

	updated, err := a.cartSvc.AddToCart(r.Context(), req.Cart, req.ProductID, req.Quantity)
	if err != nil {
		a.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, mapCart(updated))
}

func (a *API) handleGetCart(w http.ResponseWriter, r *http.Request) {
	var req cartRequest
	if err := a.decodeAndValidate(r, &req); err != nil {
		respondBadRequest(w, err)
		return
	}

	details, err := a.cartSvc.GetCartDetails(r.Context(), req.Cart)
	if err != nil {
		a.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, mapCartDetails(details))
}

func (a *API) handleUpdateCartItem(w http.ResponseWriter, r *http.Request) {
	var req cartItemRequest
	if err := a.decodeAndValidate(r, &req); err != nil {
		respondBadRequest(w, err)
		return
	}

	updated, err := a.cartSvc.UpdateCartItem(r.Context(), req.Cart, req.ProductID, req.Quantity)
	if err != nil {
		a.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, mapCart(updated))
}

func (a *API) handleRemoveCartItem(w http.ResponseWriter, r *http.Request) {
	productID, err := parseIDParam(r, "product_id")
	if err != nil {
		respondError(w, http.StatusBadRequest, err)
		return
	}

	var req cartRequest
	if err := a.decodeAndValidate(r, &req); err != nil {
		respondBadRequest(w, err)
		return
	}

	updated, err := a.cartSvc.RemoveFromCart(r.Context(), req.Cart, productID)
	if err != nil {
		a.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, mapCart(updated))
}
