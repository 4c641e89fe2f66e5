package server

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"ah_market/internal/domain/entity"
	"ah_market/internal/domain/service/query"
	"ah_market/pkg/errcodes"
	"ah_market/pkg/failure"
	"ah_market/pkg/httpx/reply"
)

const defaultPetLevel = 80

func (s Server) getCurrentItem(w http.ResponseWriter, r *http.Request) error {
	itemName := chi.URLParam(r, "itemName")

	// Pet searches go through the pet projection; everything else is a
	// plain item lookup with an optional attribute filter.
	if itemName == entity.PetsItem {
		return s.petSearch(w, r)
	}

	result, ok := s.query.Item(itemName, r.URL.Query().Get("attributes"))
	if !ok {
		return failure.NewNotFoundError(
			"no current auctions for item "+itemName,
			failure.WithCode(errcodes.ItemNotFound),
			failure.WithDescription("No current auctions found for that item"),
		)
	}

	reply.JSON(r.Context(), w, http.StatusOK, result)

	return nil
}

func (s Server) petSearch(w http.ResponseWriter, r *http.Request) error {
	params := r.URL.Query()

	petQuery := query.PetQuery{
		Rarity: params.Get("rarity"),
		Name:   params.Get("name"),
		Level:  defaultPetLevel,
	}

	if rawLevel := params.Get("level"); rawLevel != "" {
		level, err := strconv.ParseFloat(rawLevel, 64)
		if err != nil {
			return failure.NewInvalidArgumentError(
				"parse level: "+err.Error(),
				failure.WithCode(errcodes.InvalidLevel),
				failure.WithDescription("Query parameter \"level\" must be numeric"),
			)
		}
		petQuery.Level = level
	}

	if rawCandied := params.Get("candied"); rawCandied != "" {
		petQuery.FilterCandied = true
		petQuery.CandiedOnly = rawCandied == "true"
	}

	result, ok := s.query.Pets(petQuery)
	if !ok {
		return failure.NewNotFoundError(
			"no pet auctions for that search",
			failure.WithCode(errcodes.PetAuctionsNotFound),
			failure.WithDescription("No pet auctions found for that search"),
		)
	}

	reply.JSON(r.Context(), w, http.StatusOK, result)

	return nil
}

func (s Server) getByAttribute(w http.ResponseWriter, r *http.Request) error {
	attribute := chi.URLParam(r, "attribute")
	params := r.URL.Query()

	rawLevel := params.Get("level")
	if rawLevel == "" {
		return failure.NewInvalidArgumentError(
			"missing level",
			failure.WithCode(errcodes.InvalidLevel),
			failure.WithDescription("Query parameter \"level\" is required"),
		)
	}

	level, err := strconv.ParseFloat(rawLevel, 64)
	if err != nil {
		return failure.NewInvalidArgumentError(
			"parse level: "+err.Error(),
			failure.WithCode(errcodes.InvalidLevel),
			failure.WithDescription("Query parameter \"level\" must be numeric"),
		)
	}

	piece := params.Get("piece")
	if piece != "" && !query.ValidPiece(piece) {
		return failure.NewInvalidArgumentError(
			"unknown piece "+piece,
			failure.WithCode(errcodes.InvalidPiece),
			failure.WithDescription("Unknown equipment piece"),
		)
	}

	onwards := params.Get("onwards") == "true"

	result, ok := s.query.ByAttribute(attribute, level, onwards, piece)
	if !ok {
		return failure.NewNotFoundError(
			"no auctions for attribute "+attribute,
			failure.WithCode(errcodes.AttributeNotFound),
			failure.WithDescription("No auctions found for that attribute and level"),
		)
	}

	reply.JSON(r.Context(), w, http.StatusOK, result)

	return nil
}

func (s Server) getPets(w http.ResponseWriter, r *http.Request) error {
	buckets, ok := s.query.Raw(entity.PetsItem)
	if !ok {
		return failure.NewNotFoundError(
			"no pet auctions",
			failure.WithCode(errcodes.PetAuctionsNotFound),
			failure.WithDescription("No pet auctions found"),
		)
	}

	reply.JSON(r.Context(), w, http.StatusOK, buckets)

	return nil
}

func (s Server) getRaw(w http.ResponseWriter, r *http.Request) error {
	itemName := chi.URLParam(r, "itemName")

	buckets, ok := s.query.Raw(itemName)
	if !ok {
		return failure.NewNotFoundError(
			"no current auctions for item "+itemName,
			failure.WithCode(errcodes.ItemNotFound),
			failure.WithDescription("No current auctions found"),
		)
	}

	reply.JSON(r.Context(), w, http.StatusOK, buckets)

	return nil
}

func (s Server) getAverages(w http.ResponseWriter, r *http.Request) error {
	reply.JSON(r.Context(), w, http.StatusOK, s.query.AllAverages())

	return nil
}

type statusResponse struct {
	LastUpdate   *time.Time `json:"lastUpdate"`
	AuctionCount int        `json:"auctionCount"`
}

func (s Server) getStatus(w http.ResponseWriter, r *http.Request) error {
	response := statusResponse{
		AuctionCount: s.published.Load().Len(),
	}

	if committed := s.published.CommittedAt(); !committed.IsZero() {
		response.LastUpdate = &committed
	}

	reply.JSON(r.Context(), w, http.StatusOK, response)

	return nil
}
