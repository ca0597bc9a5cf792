package maps

import (
	"context"
	"fmt"
	"strings"

	"goplanner/internal/domain/model"
	"goplanner/internal/domain/service"
	"goplanner/internal/domain/strategy"
)

const (
	attractionFilterTourism  = `["tourism"~"^(attraction|museum|gallery|zoo|theme_park|viewpoint|monument)$"]`
	attractionFilterHistoric = `["historic"]`
	restaurantFilter         = `["amenity"~"^(restaurant|cafe|fast_food|bar|pub|food_court|ice_cream)$"]`
	hotelFilter              = `["tourism"~"^(hotel|hostel|guest_house|apartment|resort|motel)$"]`
)

// --- Overpass ---

type overpassAttractionStrategy struct {
	overpass *OverpassProvider
}

// NewOverpassAttractionStrategy は周辺5kmの観光地・史跡を検索する戦略を作成する
func NewOverpassAttractionStrategy(overpass *OverpassProvider) strategy.PlaceStrategy {
	return &overpassAttractionStrategy{overpass: overpass}
}

func (s *overpassAttractionStrategy) Name() string {
	return "overpass"
}

func (s *overpassAttractionStrategy) FindPlaces(ctx context.Context, query model.PlaceQuery) ([]model.PlaceCandidate, error) {
	ql := AroundQuery(query.Center, model.AttractionRadiusMeters, attractionFilterTourism, attractionFilterHistoric)
	elements, err := s.overpass.Query(ctx, ql)
	if err != nil {
		return nil, fmt.Errorf("観光地の取得に失敗: %w", err)
	}

	places := make([]model.PlaceCandidate, 0, model.MaxAttractions)
	for _, el := range named(elements) {
		if len(places) == model.MaxAttractions {
			break
		}
		places = append(places, model.PlaceCandidate{
			Name:        el.Tag("name"),
			Description: firstNonEmpty(el.Tag("description"), el.Tag("wikipedia"), el.Tag("description:en")),
			Rating:      model.RatingNotAvailable,
			Address:     firstNonEmpty(el.Tag("addr:full"), el.Tag("addr:street"), query.Destination),
			Coordinates: el.Coordinates(query.Center),
			Category:    firstNonEmpty(el.Tag("tourism"), el.Tag("historic"), "attraction"),
		})
	}
	return places, nil
}

type overpassRestaurantStrategy struct {
	overpass *OverpassProvider
}

// NewOverpassRestaurantStrategy は周辺3kmの飲食店を検索する戦略を作成する
func NewOverpassRestaurantStrategy(overpass *OverpassProvider) strategy.PlaceStrategy {
	return &overpassRestaurantStrategy{overpass: overpass}
}

func (s *overpassRestaurantStrategy) Name() string {
	return "overpass"
}

func (s *overpassRestaurantStrategy) FindPlaces(ctx context.Context, query model.PlaceQuery) ([]model.PlaceCandidate, error) {
	ql := AroundQuery(query.Center, model.RestaurantRadiusMeters, restaurantFilter)
	elements, err := s.overpass.Query(ctx, ql)
	if err != nil {
		return nil, fmt.Errorf("飲食店の取得に失敗: %w", err)
	}

	places := make([]model.PlaceCandidate, 0, model.MaxRestaurants)
	for _, el := range named(elements) {
		if len(places) == model.MaxRestaurants {
			break
		}
		street := strings.TrimSpace(el.Tag("addr:housenumber") + " " + el.Tag("addr:street"))
		places = append(places, model.PlaceCandidate{
			Name:        el.Tag("name"),
			Rating:      model.RatingNotAvailable,
			Address:     firstNonEmpty(el.Tag("addr:full"), street, query.Destination),
			Coordinates: el.Coordinates(query.Center),
			Category:    restaurantCategory(el.Tag("amenity")),
			Cuisine:     el.Tag("cuisine"),
		})
	}
	return places, nil
}

type overpassHotelStrategy struct {
	overpass *OverpassProvider
	policy   service.HotelTierPolicy
}

// NewOverpassHotelStrategy は周辺5kmの宿泊施設を検索し、予算帯で絞り込む戦略を作成する
func NewOverpassHotelStrategy(overpass *OverpassProvider, policy service.HotelTierPolicy) strategy.PlaceStrategy {
	return &overpassHotelStrategy{overpass: overpass, policy: policy}
}

func (s *overpassHotelStrategy) Name() string {
	return "overpass"
}

func (s *overpassHotelStrategy) FindPlaces(ctx context.Context, query model.PlaceQuery) ([]model.PlaceCandidate, error) {
	ql := AroundQuery(query.Center, model.HotelRadiusMeters, hotelFilter)
	elements, err := s.overpass.Query(ctx, ql)
	if err != nil {
		return nil, fmt.Errorf("宿泊施設の取得に失敗: %w", err)
	}

	hotels := make([]model.PlaceCandidate, 0, len(elements))
	for _, el := range named(elements) {
		hotels = append(hotels, model.PlaceCandidate{
			Name:        el.Tag("name"),
			Rating:      model.RatingNotAvailable,
			Address:     firstNonEmpty(el.Tag("addr:full"), el.Tag("addr:street"), query.Destination),
			Coordinates: el.Coordinates(query.Center),
			Category:    firstNonEmpty(el.Tag("tourism"), "hotel"),
			Stars:       el.Tag("stars"),
			Website:     el.Tag("website"),
			Phone:       el.Tag("phone"),
		})
	}
	return s.policy.Select(hotels, query.Budget, model.MaxHotels), nil
}

// --- Nominatim（名称検索によるフォールバック） ---

type nominatimPlaceStrategy struct {
	nominatim *NominatimProvider
	kind      model.PlaceKind
}

// NewNominatimPlaceStrategy は「{都市名} tourist attractions」などの自由文検索で候補を探す戦略を作成する
func NewNominatimPlaceStrategy(nominatim *NominatimProvider, kind model.PlaceKind) strategy.PlaceStrategy {
	return &nominatimPlaceStrategy{nominatim: nominatim, kind: kind}
}

func (s *nominatimPlaceStrategy) Name() string {
	return "nominatim"
}

func (s *nominatimPlaceStrategy) FindPlaces(ctx context.Context, query model.PlaceQuery) ([]model.PlaceCandidate, error) {
	results, err := s.nominatim.Search(ctx, s.searchText(query), model.NameSearchLimit)
	if err != nil {
		return nil, fmt.Errorf("名称検索に失敗: %w", err)
	}

	places := make([]model.PlaceCandidate, 0, len(results))
	for _, r := range results {
		if r.DisplayName == "" || !s.accepts(r) {
			continue
		}
		c := model.PlaceCandidate{
			Name:        r.Name(),
			Rating:      model.RatingNotAvailable,
			Address:     r.DisplayName,
			Coordinates: model.LatLng{Lat: r.Lat, Lng: r.Lng},
			Category:    r.Type,
		}
		switch s.kind {
		case model.PlaceKindRestaurant:
			c.Category = restaurantCategory(r.Type)
		case model.PlaceKindHotel:
			c.Category = "hotel"
			c.BudgetTier = query.Budget
			if c.BudgetTier == "" {
				c.BudgetTier = model.BudgetMid
			}
		}
		places = append(places, c)
	}
	return capFor(s.kind, places), nil
}

func (s *nominatimPlaceStrategy) searchText(query model.PlaceQuery) string {
	city := query.City
	if city == "" {
		city = model.CityName(query.Destination)
	}
	switch s.kind {
	case model.PlaceKindRestaurant:
		return city + " restaurants cafes"
	case model.PlaceKindHotel:
		return city + " hotels accommodations"
	default:
		return city + " tourist attractions"
	}
}

func (s *nominatimPlaceStrategy) accepts(r NominatimPlace) bool {
	switch s.kind {
	case model.PlaceKindRestaurant:
		return strings.Contains(r.Type, "restaurant") || strings.Contains(r.Type, "cafe")
	case model.PlaceKindHotel:
		return strings.Contains(r.Type, "hotel") || strings.Contains(r.Type, "accommodation")
	default:
		return r.Class == "tourism" || r.Class == "historic"
	}
}

func capFor(kind model.PlaceKind, places []model.PlaceCandidate) []model.PlaceCandidate {
	limit := model.MaxAttractions
	switch kind {
	case model.PlaceKindRestaurant:
		limit = model.MaxRestaurants
	case model.PlaceKindHotel:
		limit = model.MaxHotels
	}
	if len(places) > limit {
		return places[:limit]
	}
	return places
}

// restaurantCategory はカフェ系とそれ以外を区別する
func restaurantCategory(amenity string) string {
	if strings.Contains(amenity, "cafe") || amenity == "ice_cream" {
		return "Cafe"
	}
	return "Restaurant"
}

func named(elements []OverpassElement) []OverpassElement {
	out := make([]OverpassElement, 0, len(elements))
	for _, el := range elements {
		if el.Tag("name") != "" {
			out = append(out, el)
		}
	}
	return out
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
