package http

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-kit/kit/endpoint"
	"github.com/hos6/urlshortener/domain"
	"github.com/hos6/urlshortener/kit/code"
	httpKit "github.com/hos6/urlshortener/kit/http"
)

type urlShortenRequest struct {
	LongURL string `json:"longURL"`
}

type shortURLDTO struct {
	ShortURL  string    `json:"shortURL"`
	LongURL   string    `json:"longURL"`
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
	ExpiresAt time.Time `json:"expiresAt"`
}

func makeShortURLDTO(shortURL *domain.ShortURL) shortURLDTO {
	return shortURLDTO{
		ShortURL:  shortURL.ShortURL,
		LongURL:   shortURL.LongURL,
		IsActive:  shortURL.IsActive,
		CreatedAt: shortURL.CreatedAt,
		ExpiresAt: shortURL.ExpiresAt,
	}
}

func MakeURLShortenEndpoint(svc domain.ShortURLUseCase) endpoint.Endpoint {
	return func(ctx context.Context, request interface{}) (response interface{}, err error) {
		userID := httpKit.GetUserID(ctx)
		if userID == "" {
			return nil, code.CreateErrorCode(http.StatusUnauthorized)
		}
		req := request.(urlShortenRequest)
		shortURL, err := svc.Create(ctx, req.LongURL, userID)
		if err != nil {
			return nil, err
		}
		return makeShortURLDTO(shortURL), nil
	}
}

func DecodeURLShortenRequest(ctx context.Context, r *http.Request) (interface{}, error) {
	var request urlShortenRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		return nil, code.CreateErrorCode(http.StatusBadRequest).AddCode(code.InvalidBody).AddErrorMetaData(err)
	}
	return request, nil
}

func EncodeURLShortenResponse(ctx context.Context, w http.ResponseWriter, response interface{}) error {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusCreated)
	return json.NewEncoder(w).Encode(response)
}
