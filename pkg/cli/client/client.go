/* Copyright 2025 Amity Authors
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Package client provides interfaces for interacting with the Amity server
// and the data structures for responses
package client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/amity/amity/pkg/cli/context"
	"github.com/amity/amity/pkg/cli/log"
	"github.com/pkg/errors"
	"golang.org/x/time/rate"
)

// ErrInvalidLogin is an error for invalid credentials for login
var ErrInvalidLogin = errors.New("wrong credentials")

// HTTPError represents an HTTP error response from the server
type HTTPError struct {
	StatusCode int
	Message    string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf(`response %d "%s"`, e.StatusCode, e.Message)
}

// IsConflict returns true if the error is a 409 Conflict error
func (e *HTTPError) IsConflict() bool {
	return e.StatusCode == 409
}

const (
	contentTypeForm = "application/x-www-form-urlencoded"

	// clientRateLimitPerSecond is the max requests per second the client will make
	clientRateLimitPerSecond = 50
	// clientRateLimitBurst is the burst capacity for rate limiting
	clientRateLimitBurst = 100
)

// rateLimitedTransport wraps an http.RoundTripper with rate limiting
type rateLimitedTransport struct {
	transport http.RoundTripper
	limiter   *rate.Limiter
}

func (t *rateLimitedTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if err := t.limiter.Wait(req.Context()); err != nil {
		return nil, err
	}
	return t.transport.RoundTrip(req)
}

// NewRateLimitedHTTPClient creates an HTTP client with rate limiting
func NewRateLimitedHTTPClient() *http.Client {
	interval := time.Second / time.Duration(clientRateLimitPerSecond)

	transport := &rateLimitedTransport{
		transport: http.DefaultTransport,
		limiter:   rate.NewLimiter(rate.Every(interval), clientRateLimitBurst),
	}
	return &http.Client{
		Transport: transport,
	}
}

func getHTTPClient(ctx context.AmityCtx) *http.Client {
	if ctx.HTTPClient != nil {
		return ctx.HTTPClient
	}

	return &http.Client{}
}

func getReq(ctx context.AmityCtx, method, path, contentType, body string) (*http.Request, error) {
	endpoint := fmt.Sprintf("%s%s", ctx.APIEndpoint, path)
	req, err := http.NewRequest(method, endpoint, strings.NewReader(body))
	if err != nil {
		return nil, errors.Wrap(err, "constructing http request")
	}

	req.Header.Set("CLI-Version", ctx.Version)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	if ctx.SessionKey != "" {
		credential := fmt.Sprintf("Bearer %s", ctx.SessionKey)
		req.Header.Set("Authorization", credential)
	}

	return req, nil
}

// checkRespErr checks if the given http response indicates an error. It
// returns a decoded error message if so.
func checkRespErr(res *http.Response) error {
	if res.StatusCode < 400 {
		return nil
	}

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return errors.Wrapf(err, "server responded with %d but client could not read the response body", res.StatusCode)
	}

	message := strings.TrimRight(string(body), "\n")

	// error payloads are {"error": "..."}
	var payload struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err == nil && payload.Error != "" {
		message = payload.Error
	}

	return &HTTPError{
		StatusCode: res.StatusCode,
		Message:    message,
	}
}

// doReq does a http request to the given path in the api endpoint
func doReq(ctx context.AmityCtx, method, path, contentType, body string) (*http.Response, error) {
	req, err := getReq(ctx, method, path, contentType, body)
	if err != nil {
		return nil, errors.Wrap(err, "getting request")
	}

	log.Debug("HTTP %s %s\n", method, path)

	hc := getHTTPClient(ctx)
	res, err := hc.Do(req)
	if err != nil {
		return res, errors.Wrap(err, "making http request")
	}

	log.Debug("HTTP %d %s\n", res.StatusCode, res.Status)

	if err = checkRespErr(res); err != nil {
		return res, err
	}

	return res, nil
}

// doFormReq does a form-encoded http request to the given path
func doFormReq(ctx context.AmityCtx, method, path string, form url.Values) (*http.Response, error) {
	return doReq(ctx, method, path, contentTypeForm, form.Encode())
}

// doAuthorizedReq does a http request to the given path in the api endpoint
// as a user, with the appropriate headers.
func doAuthorizedReq(ctx context.AmityCtx, method, path string, form url.Values) (*http.Response, error) {
	if ctx.SessionKey == "" {
		return nil, errors.New("no session key found")
	}

	if form == nil {
		return doReq(ctx, method, path, "", "")
	}

	return doFormReq(ctx, method, path, form)
}

func decodeInto(res *http.Response, dest interface{}) error {
	defer res.Body.Close()

	if err := json.NewDecoder(res.Body).Decode(dest); err != nil {
		return errors.Wrap(err, "unmarshalling the payload")
	}

	return nil
}

// UserResp represents a user in a server response
type UserResp struct {
	ID         int    `json:"user_id"`
	Username   string `json:"username"`
	Name       string `json:"name"`
	Gender     string `json:"gender"`
	Birthday   string `json:"bday"`
	ContactNum string `json:"contact_num"`
	ProfilePic string `json:"profile_pic"`
	Status     string `json:"status"`
	LastActive string `json:"last_active"`
	Remark     string `json:"remark"`
}

// SigninResponse is the response from the login endpoint
type SigninResponse struct {
	Key       string   `json:"key"`
	ExpiresAt int64    `json:"expires_at"`
	User      UserResp `json:"user"`
}

// FriendResp represents a friend in a server response
type FriendResp struct {
	User  UserResp `json:"user"`
	Since string   `json:"since"`
}

// FriendRequestResp represents a pending friend request in a server response
type FriendRequestResp struct {
	User UserResp `json:"user"`
	Date string   `json:"date"`
}

// ChatResp represents a chat message in a server response
type ChatResp struct {
	ID       int    `json:"chat_id"`
	Sender   int    `json:"sender"`
	Receiver int    `json:"receiver"`
	Content  string `json:"content"`
}

// MoodResp represents a daily mood in a server response
type MoodResp struct {
	Date string `json:"date"`
	Mood string `json:"mood"`
}

// PostResp represents a post in a server response
type PostResp struct {
	ID        int    `json:"post_id"`
	UserID    int    `json:"user_id"`
	ImagePath string `json:"image_path"`
	Datetime  string `json:"datetime"`
}

// Register creates a new account on the server
func Register(ctx context.AmityCtx, username, password string) (UserResp, error) {
	var ret UserResp

	form := url.Values{"username": {username}, "password": {password}}
	res, err := doFormReq(ctx, "POST", "/register", form)
	if err != nil {
		return ret, err
	}

	if err := decodeInto(res, &ret); err != nil {
		return ret, err
	}

	return ret, nil
}

// Signin requests a session from the server
func Signin(ctx context.AmityCtx, username, password string) (SigninResponse, error) {
	var ret SigninResponse

	form := url.Values{"username": {username}, "password": {password}}
	res, err := doFormReq(ctx, "POST", "/login", form)
	if err != nil {
		var httpErr *HTTPError
		if errors.As(err, &httpErr) && httpErr.StatusCode == http.StatusUnauthorized {
			return ret, ErrInvalidLogin
		}

		return ret, err
	}

	if err := decodeInto(res, &ret); err != nil {
		return ret, err
	}

	return ret, nil
}

// Signout deletes the session on the server
func Signout(ctx context.AmityCtx) error {
	res, err := doAuthorizedReq(ctx, "POST", "/logout", url.Values{})
	if err != nil {
		return err
	}
	res.Body.Close()

	return nil
}

// GetMe gets the current user
func GetMe(ctx context.AmityCtx) (UserResp, error) {
	var ret UserResp

	res, err := doAuthorizedReq(ctx, "GET", "/me", nil)
	if err != nil {
		return ret, err
	}

	if err := decodeInto(res, &ret); err != nil {
		return ret, err
	}

	return ret, nil
}

// UpdateRemark updates the current user's remark
func UpdateRemark(ctx context.AmityCtx, remark string) (UserResp, error) {
	var ret UserResp

	res, err := doAuthorizedReq(ctx, "PATCH", "/remark", url.Values{"remark": {remark}})
	if err != nil {
		return ret, err
	}

	if err := decodeInto(res, &ret); err != nil {
		return ret, err
	}

	return ret, nil
}

// ProfileParams holds the profile fields to update. Empty fields are
// left unchanged by the server.
type ProfileParams struct {
	Password    string
	Name        string
	Gender      string
	Birthday    string
	ContactNum  string
	PicturePath string
}

// UpdateProfile updates the current user's profile. When a picture path
// is given the request is sent as a multipart form.
func UpdateProfile(ctx context.AmityCtx, params ProfileParams) (UserResp, error) {
	var ret UserResp

	if ctx.SessionKey == "" {
		return ret, errors.New("no session key found")
	}

	fields := map[string]string{
		"password":    params.Password,
		"name":        params.Name,
		"gender":      params.Gender,
		"bday":        params.Birthday,
		"contact_num": params.ContactNum,
	}

	if params.PicturePath == "" {
		form := url.Values{}
		for k, v := range fields {
			if v != "" {
				form.Set(k, v)
			}
		}

		res, err := doAuthorizedReq(ctx, "PATCH", "/profile", form)
		if err != nil {
			return ret, err
		}

		if err := decodeInto(res, &ret); err != nil {
			return ret, err
		}

		return ret, nil
	}

	f, err := os.Open(params.PicturePath)
	if err != nil {
		return ret, errors.Wrap(err, "opening picture file")
	}
	defer f.Close()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	for k, v := range fields {
		if v == "" {
			continue
		}
		if err := mw.WriteField(k, v); err != nil {
			return ret, errors.Wrap(err, "writing form field")
		}
	}
	part, err := mw.CreateFormFile("picture", filepath.Base(params.PicturePath))
	if err != nil {
		return ret, errors.Wrap(err, "creating form file")
	}
	if _, err := io.Copy(part, f); err != nil {
		return ret, errors.Wrap(err, "copying picture content")
	}
	if err := mw.Close(); err != nil {
		return ret, errors.Wrap(err, "closing multipart writer")
	}

	res, err := doReq(ctx, "PATCH", "/profile", mw.FormDataContentType(), body.String())
	if err != nil {
		return ret, err
	}

	if err := decodeInto(res, &ret); err != nil {
		return ret, err
	}

	return ret, nil
}

// SendFriendRequest sends a friend request to the user with the given
// username. It returns the outcome code from the server.
func SendFriendRequest(ctx context.AmityCtx, username string) (string, error) {
	form := url.Values{"username": {username}}
	res, err := doAuthorizedReq(ctx, "POST", "/friend-requests", form)
	if err != nil {
		var httpErr *HTTPError
		if errors.As(err, &httpErr) {
			// guard outcomes also arrive as {"code": ...}
			var payload struct {
				Code string `json:"code"`
			}
			if jsonErr := json.Unmarshal([]byte(httpErr.Message), &payload); jsonErr == nil && payload.Code != "" {
				return payload.Code, nil
			}
		}

		return "", err
	}

	var payload struct {
		Code string `json:"code"`
	}
	if err := decodeInto(res, &payload); err != nil {
		return "", err
	}

	return payload.Code, nil
}

// GetFriends gets the friend list
func GetFriends(ctx context.AmityCtx) ([]FriendResp, error) {
	res, err := doAuthorizedReq(ctx, "GET", "/friends", nil)
	if err != nil {
		return nil, err
	}

	var ret []FriendResp
	if err := decodeInto(res, &ret); err != nil {
		return nil, err
	}

	return ret, nil
}

// GetFriendRequests gets the pending friend requests
func GetFriendRequests(ctx context.AmityCtx) ([]FriendRequestResp, error) {
	res, err := doAuthorizedReq(ctx, "GET", "/friend-requests", nil)
	if err != nil {
		return nil, err
	}

	var ret []FriendRequestResp
	if err := decodeInto(res, &ret); err != nil {
		return nil, err
	}

	return ret, nil
}

// AcceptFriendRequest accepts the pending request from the given sender
func AcceptFriendRequest(ctx context.AmityCtx, senderID int) error {
	path := fmt.Sprintf("/friend-requests/%d/accept", senderID)
	res, err := doAuthorizedReq(ctx, "POST", path, url.Values{})
	if err != nil {
		return err
	}
	res.Body.Close()

	return nil
}

// RejectFriendRequest rejects the pending request from the given sender
func RejectFriendRequest(ctx context.AmityCtx, senderID int) error {
	path := fmt.Sprintf("/friend-requests/%d/reject", senderID)
	res, err := doAuthorizedReq(ctx, "POST", path, url.Values{})
	if err != nil {
		return err
	}
	res.Body.Close()

	return nil
}

// Unfriend removes the friendship with the given user
func Unfriend(ctx context.AmityCtx, friendID int) error {
	path := fmt.Sprintf("/friends/%d", friendID)
	res, err := doAuthorizedReq(ctx, "DELETE", path, nil)
	if err != nil {
		return err
	}
	res.Body.Close()

	return nil
}

// SendMessage sends a chat message to the given receiver
func SendMessage(ctx context.AmityCtx, receiverID int, content string) (ChatResp, error) {
	var ret ChatResp

	form := url.Values{
		"receiver_id": {strconv.Itoa(receiverID)},
		"content":     {content},
	}
	res, err := doAuthorizedReq(ctx, "POST", "/chats", form)
	if err != nil {
		return ret, err
	}

	if err := decodeInto(res, &ret); err != nil {
		return ret, err
	}

	return ret, nil
}

// GetChatHistory gets the chat history with the given friend
func GetChatHistory(ctx context.AmityCtx, friendID int) ([]ChatResp, error) {
	path := fmt.Sprintf("/chats/%d", friendID)
	res, err := doAuthorizedReq(ctx, "GET", path, nil)
	if err != nil {
		return nil, err
	}

	var ret []ChatResp
	if err := decodeInto(res, &ret); err != nil {
		return nil, err
	}

	return ret, nil
}

// SetMood records the mood for today
func SetMood(ctx context.AmityCtx, mood string) error {
	res, err := doAuthorizedReq(ctx, "POST", "/moods", url.Values{"mood": {mood}})
	if err != nil {
		return err
	}
	res.Body.Close()

	return nil
}

// GetMoods gets recorded moods. A positive days value limits the result to
// one entry per day for the last n days.
func GetMoods(ctx context.AmityCtx, days int) ([]MoodResp, error) {
	path := "/moods"
	if days > 0 {
		path = fmt.Sprintf("/moods?days=%d", days)
	}

	res, err := doAuthorizedReq(ctx, "GET", path, nil)
	if err != nil {
		return nil, err
	}

	var ret []MoodResp
	if err := decodeInto(res, &ret); err != nil {
		return nil, err
	}

	return ret, nil
}

// GetMoodCalendar gets one mood entry per day of the given month
func GetMoodCalendar(ctx context.AmityCtx, year, month int) ([]MoodResp, error) {
	path := fmt.Sprintf("/moods/calendar?year=%d&month=%d", year, month)
	res, err := doAuthorizedReq(ctx, "GET", path, nil)
	if err != nil {
		return nil, err
	}

	var ret []MoodResp
	if err := decodeInto(res, &ret); err != nil {
		return nil, err
	}

	return ret, nil
}

// CreatePost uploads the image at the given path as a new post
func CreatePost(ctx context.AmityCtx, imagePath string) (PostResp, error) {
	var ret PostResp

	if ctx.SessionKey == "" {
		return ret, errors.New("no session key found")
	}

	f, err := os.Open(imagePath)
	if err != nil {
		return ret, errors.Wrap(err, "opening image file")
	}
	defer f.Close()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("image", filepath.Base(imagePath))
	if err != nil {
		return ret, errors.Wrap(err, "creating form file")
	}
	if _, err := io.Copy(part, f); err != nil {
		return ret, errors.Wrap(err, "copying image content")
	}
	if err := mw.Close(); err != nil {
		return ret, errors.Wrap(err, "closing multipart writer")
	}

	res, err := doReq(ctx, "POST", "/posts", mw.FormDataContentType(), body.String())
	if err != nil {
		return ret, err
	}

	if err := decodeInto(res, &ret); err != nil {
		return ret, err
	}

	return ret, nil
}

// GetPosts gets the current user's posts
func GetPosts(ctx context.AmityCtx) ([]PostResp, error) {
	res, err := doAuthorizedReq(ctx, "GET", "/posts", nil)
	if err != nil {
		return nil, err
	}

	var ret []PostResp
	if err := decodeInto(res, &ret); err != nil {
		return nil, err
	}

	return ret, nil
}

// GetUserPosts gets the posts of the user with the given id
func GetUserPosts(ctx context.AmityCtx, userID int) ([]PostResp, error) {
	path := fmt.Sprintf("/users/%d/posts", userID)
	res, err := doAuthorizedReq(ctx, "GET", path, nil)
	if err != nil {
		return nil, err
	}

	var ret []PostResp
	if err := decodeInto(res, &ret); err != nil {
		return nil, err
	}

	return ret, nil
}
