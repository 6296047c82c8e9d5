package tmdb

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"
)

// Client is the TMDB API client.
type Client struct {
	apiKey  string
	baseURL string
	http    *http.Client
}

// NewClient creates a new TMDB API client.
func NewClient(apiKey, baseURL string) *Client {
	return &Client{
		apiKey:  apiKey,
		baseURL: baseURL,
		http: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// ---- TMDB Response Types ----

// Movie is a movie from TMDB list results.
type Movie struct {
	ID          int     `json:"id"`
	Title       string  `json:"title"`
	Overview    string  `json:"overview"`
	ReleaseDate string  `json:"release_date"`
	Popularity  float64 `json:"popularity"`
	VoteAverage float64 `json:"vote_average"`
	PosterPath  string  `json:"poster_path"`
	GenreIDs    []int   `json:"genre_ids"`
}

// SearchResponse is the TMDB pagination envelope for movie lists.
type SearchResponse struct {
	Page         int     `json:"page"`
	Results      []Movie `json:"results"`
	TotalPages   int     `json:"total_pages"`
	TotalResults int     `json:"total_results"`
}

// MovieDetail is the detailed movie info from TMDB.
type MovieDetail struct {
	ID               int     `json:"id"`
	Title            string  `json:"title"`
	Overview         string  `json:"overview"`
	Tagline          string  `json:"tagline"`
	ReleaseDate      string  `json:"release_date"`
	Popularity       float64 `json:"popularity"`
	VoteAverage      float64 `json:"vote_average"`
	PosterPath       string  `json:"poster_path"`
	BackdropPath     string  `json:"backdrop_path"`
	Genres           []Genre `json:"genres"`
	OriginalLanguage string  `json:"original_language"`
	Runtime          int     `json:"runtime"`
	Budget           int64   `json:"budget"`
	Revenue          int64   `json:"revenue"`
	Status           string  `json:"status"`
}

// Genre is a genre from TMDB.
type Genre struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// GenreListResponse is the TMDB genre/movie/list response.
type GenreListResponse struct {
	Genres []Genre `json:"genres"`
}

// ---- Client Methods ----

// SearchMovies searches the catalog. With an empty query it falls back to
// discover-by-genre when a genre is given, and to the popular listing
// otherwise, so one endpoint serves the whole search surface.
func (c *Client) SearchMovies(query string, page, genreID int) (*SearchResponse, error) {
	if page < 1 {
		page = 1
	}

	var u string
	switch {
	case query != "":
		u = fmt.Sprintf("%s/search/movie?api_key=%s&query=%s&page=%d",
			c.baseURL, c.apiKey, url.QueryEscape(query), page)
		if genreID > 0 {
			u += fmt.Sprintf("&with_genres=%d", genreID)
		}
	case genreID > 0:
		u = fmt.Sprintf("%s/discover/movie?api_key=%s&with_genres=%d&page=%d&sort_by=popularity.desc",
			c.baseURL, c.apiKey, genreID, page)
	default:
		u = fmt.Sprintf("%s/movie/popular?api_key=%s&page=%d", c.baseURL, c.apiKey, page)
	}

	slog.Debug("fetching TMDB search", "query", query, "genre", genreID, "page", page)
	return c.getList(u)
}

// PopularMovies fetches the popular movie listing.
func (c *Client) PopularMovies(page int) (*SearchResponse, error) {
	if page < 1 {
		page = 1
	}
	u := fmt.Sprintf("%s/movie/popular?api_key=%s&page=%d", c.baseURL, c.apiKey, page)

	slog.Debug("fetching TMDB popular", "page", page)
	return c.getList(u)
}

// TopRatedMovies fetches the top-rated movie listing.
func (c *Client) TopRatedMovies(page int) (*SearchResponse, error) {
	if page < 1 {
		page = 1
	}
	u := fmt.Sprintf("%s/movie/top_rated?api_key=%s&page=%d", c.baseURL, c.apiKey, page)

	slog.Debug("fetching TMDB top rated", "page", page)
	return c.getList(u)
}

// MoviesByGenre fetches the discover listing for a genre.
func (c *Client) MoviesByGenre(genreID, page int) (*SearchResponse, error) {
	if page < 1 {
		page = 1
	}
	u := fmt.Sprintf("%s/discover/movie?api_key=%s&with_genres=%d&sort_by=popularity.desc&page=%d",
		c.baseURL, c.apiKey, genreID, page)

	slog.Debug("fetching TMDB genre listing", "genre", genreID, "page", page)
	return c.getList(u)
}

// GetMovieDetail fetches detailed movie info from TMDB.
func (c *Client) GetMovieDetail(movieID int) (*MovieDetail, error) {
	u := fmt.Sprintf("%s/movie/%d?api_key=%s", c.baseURL, movieID, c.apiKey)

	slog.Debug("fetching TMDB movie detail", "movie_id", movieID)
	resp, err := c.doGet(u)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var result MovieDetail
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode movie detail response: %w", err)
	}
	return &result, nil
}

// GetGenres fetches all movie genres from TMDB.
func (c *Client) GetGenres() ([]Genre, error) {
	u := fmt.Sprintf("%s/genre/movie/list?api_key=%s", c.baseURL, c.apiKey)

	slog.Debug("fetching TMDB genres")
	resp, err := c.doGet(u)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var result GenreListResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode genres response: %w", err)
	}
	return result.Genres, nil
}

func (c *Client) getList(u string) (*SearchResponse, error) {
	resp, err := c.doGet(u)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var result SearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode list response: %w", err)
	}
	return &result, nil
}

func (c *Client) doGet(u string) (*http.Response, error) {
	resp, err := c.http.Get(u)
	if err != nil {
		return nil, fmt.Errorf("HTTP request failed: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		resp.Body.Close()
		return nil, fmt.Errorf("TMDB API returned status %d: %s", resp.StatusCode, string(body))
	}
	return resp, nil
}
