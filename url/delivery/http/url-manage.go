package http

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-kit/kit/endpoint"
	"github.com/gorilla/mux"
	"github.com/pkg/errors"
	"github.com/hos6/urlshortener/domain"
	"github.com/hos6/urlshortener/kit/code"
	httpKit "github.com/hos6/urlshortener/kit/http"
)

type urlManageRequest struct {
	ShortURL string `json:"shortURL"`
}

func MakeURLEnableEndpoint(svc domain.ShortURLUseCase) endpoint.Endpoint {
	return func(ctx context.Context, request interface{}) (response interface{}, err error) {
		userID := httpKit.GetUserID(ctx)
		if userID == "" {
			return nil, code.CreateErrorCode(http.StatusUnauthorized)
		}
		req := request.(urlManageRequest)
		if err := svc.Enable(ctx, req.ShortURL, userID); err != nil {
			return nil, err
		}
		return nil, nil
	}
}

func MakeURLDisableEndpoint(svc domain.ShortURLUseCase) endpoint.Endpoint {
	return func(ctx context.Context, request interface{}) (response interface{}, err error) {
		userID := httpKit.GetUserID(ctx)
		if userID == "" {
			return nil, code.CreateErrorCode(http.StatusUnauthorized)
		}
		req := request.(urlManageRequest)
		if err := svc.Disable(ctx, req.ShortURL, userID); err != nil {
			return nil, err
		}
		return nil, nil
	}
}

func MakeURLDeleteEndpoint(svc domain.ShortURLUseCase) endpoint.Endpoint {
	return func(ctx context.Context, request interface{}) (response interface{}, err error) {
		userID := httpKit.GetUserID(ctx)
		if userID == "" {
			return nil, code.CreateErrorCode(http.StatusUnauthorized)
		}
		req := request.(urlManageRequest)
		if err := svc.Delete(ctx, req.ShortURL, userID); err != nil {
			return nil, err
		}
		return nil, nil
	}
}

func MakeURLListEndpoint(svc domain.ShortURLUseCase) endpoint.Endpoint {
	return func(ctx context.Context, request interface{}) (response interface{}, err error) {
		userID := httpKit.GetUserID(ctx)
		if userID == "" {
			return nil, code.CreateErrorCode(http.StatusUnauthorized)
		}
		shortURLs, err := svc.GetAllByUser(ctx, userID)
		if err != nil {
			return nil, err
		}
		res := make([]shortURLDTO, 0, len(shortURLs))
		for _, shortURL := range shortURLs {
			res = append(res, makeShortURLDTO(shortURL))
		}
		return res, nil
	}
}

func DecodeURLManageRequests(ctx context.Context, r *http.Request) (interface{}, error) {
	vars := mux.Vars(r)
	shortURL, ok := vars["shortURL"]
	if !ok {
		return nil, errors.New("get shortURL failed")
	}
	return urlManageRequest{ShortURL: shortURL}, nil
}

func DecodeURLListRequests(ctx context.Context, r *http.Request) (interface{}, error) {
	return nil, nil
}

func EncodeURLManageResponse(ctx context.Context, w http.ResponseWriter, response interface{}) error {
	if response == nil {
		return nil
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	return json.NewEncoder(w).Encode(response)
}
