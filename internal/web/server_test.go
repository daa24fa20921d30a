package web

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/cookiejar"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/onsi/gomega/ghttp"

	"github.com/zombor/smart-pantry/internal/pantry"
)

var _ = Describe("Server", func() {
	var (
		clock       *mockClock
		generator   *mockGenerator
		scanner     *mockScanner
		storage     *mockStorage
		archive     pantry.Archive
		auth        BasicAuth
		server      *Server
		ghttpServer *ghttp.Server
		client      *http.Client
	)

	setupServer := func() {
		estimator := pantry.NewEstimator(nil)
		service := NewService(ServiceConfig{
			Sessions:    NewSessions(generator, &mockIDGenerator{}, clock, time.Hour),
			Estimator:   estimator,
			Importer:    pantry.NewImporter(estimator, scanner, nil, clock),
			Archive:     archive,
			Storage:     storage,
			IDGenerator: &mockIDGenerator{},
			Clock:       clock,
		})
		server = NewServerWithMux(service, auth, http.NewServeMux())

		if ghttpServer != nil {
			ghttpServer.Close()
		}
		ghttpServer = ghttp.NewServer()
		for _, method := range []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"} {
			ghttpServer.RouteToHandler(method, regexp.MustCompile(`.*`), server.Handler().ServeHTTP)
		}

		jar, err := cookiejar.New(nil)
		Expect(err).NotTo(HaveOccurred())
		client = &http.Client{Jar: jar}
	}

	do := func(method string, path string, contentType string, body io.Reader) *http.Response {
		req, err := http.NewRequest(method, ghttpServer.URL()+path, body)
		Expect(err).NotTo(HaveOccurred())
		if contentType != "" {
			req.Header.Set("Content-Type", contentType)
		}
		resp, err := client.Do(req)
		Expect(err).NotTo(HaveOccurred())
		DeferCleanup(resp.Body.Close)
		return resp
	}

	doJSON := func(method string, path string, v any) *http.Response {
		var body io.Reader
		if v != nil {
			data, err := json.Marshal(v)
			Expect(err).NotTo(HaveOccurred())
			body = bytes.NewReader(data)
		}
		return do(method, path, "application/json", body)
	}

	upload := func(path string, filename string, data []byte) *http.Response {
		var buf bytes.Buffer
		writer := multipart.NewWriter(&buf)
		part, err := writer.CreateFormFile("file", filename)
		Expect(err).NotTo(HaveOccurred())
		_, err = part.Write(data)
		Expect(err).NotTo(HaveOccurred())
		Expect(writer.Close()).To(Succeed())
		return do("POST", path, writer.FormDataContentType(), &buf)
	}

	decode := func(resp *http.Response, v any) {
		Expect(json.NewDecoder(resp.Body).Decode(v)).To(Succeed())
	}

	BeforeEach(func() {
		clock = &mockClock{now: time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC)}
		generator = &mockGenerator{reply: "Ingredients:\n- milk\n- eggs\nWhisk and fry."}
		scanner = &mockScanner{lines: []string{"milk", "eggs"}}
		storage = newMockStorage()
		auth = BasicAuth{}

		boltArchive, err := pantry.NewBoltArchive(filepath.Join(GinkgoT().TempDir(), "pantry.db"))
		Expect(err).NotTo(HaveOccurred())
		DeferCleanup(boltArchive.Close)
		archive = boltArchive

		setupServer()
	})

	AfterEach(func() {
		if ghttpServer != nil {
			ghttpServer.Close()
			ghttpServer = nil
		}
	})

	Describe("static content", func() {
		It("serves the HTML interface", func() {
			resp := do("GET", "/", "", nil)
			Expect(resp.StatusCode).To(Equal(http.StatusOK))
			Expect(resp.Header.Get("Content-Type")).To(HavePrefix("text/html"))
			body, err := io.ReadAll(resp.Body)
			Expect(err).NotTo(HaveOccurred())
			Expect(string(body)).To(ContainSubstring("Smart Pantry"))
		})

		It("serves the script", func() {
			resp := do("GET", "/static/app.js", "", nil)
			Expect(resp.StatusCode).To(Equal(http.StatusOK))
			Expect(resp.Header.Get("Content-Type")).To(HavePrefix("application/javascript"))
		})

		It("escapes pantry and snapshot values before rendering them", func() {
			body, err := io.ReadAll(do("GET", "/static/app.js", "", nil).Body)
			Expect(err).NotTo(HaveOccurred())
			script := string(body)

			Expect(script).To(ContainSubstring("function escapeHTML"))
			Expect(script).To(ContainSubstring("escapeHTML(s.name)"))
			Expect(script).To(ContainSubstring("escapeHTML(batch.warning)"))
			Expect(script).NotTo(MatchRegexp(`\$\{(s|e|item|m)\.(name|content)\}`))
			Expect(script).NotTo(MatchRegexp(`\$\{batch\.warning\}`))
		})

		It("rejects other methods on the index", func() {
			resp := do("POST", "/", "", nil)
			Expect(resp.StatusCode).To(Equal(http.StatusMethodNotAllowed))
		})
	})

	Describe("CORS", func() {
		It("answers preflight requests", func() {
			resp := do("OPTIONS", "/api/items", "", nil)
			Expect(resp.StatusCode).To(Equal(http.StatusNoContent))
			Expect(resp.Header.Get("Access-Control-Allow-Origin")).To(Equal("*"))
		})
	})

	Describe("sessions", func() {
		It("sets a session cookie on first contact", func() {
			resp := do("GET", "/api/items", "", nil)
			Expect(resp.StatusCode).To(Equal(http.StatusOK))

			cookies := resp.Cookies()
			Expect(cookies).To(HaveLen(1))
			Expect(cookies[0].Name).To(Equal("pantry_session"))
			Expect(cookies[0].HttpOnly).To(BeTrue())
		})

		It("keeps each browser's pantry separate", func() {
			resp := doJSON("POST", "/api/items", AddItemRequest{Name: "milk"})
			Expect(resp.StatusCode).To(Equal(http.StatusCreated))

			otherJar, err := cookiejar.New(nil)
			Expect(err).NotTo(HaveOccurred())
			other := &http.Client{Jar: otherJar}
			otherResp, err := other.Get(ghttpServer.URL() + "/api/items")
			Expect(err).NotTo(HaveOccurred())
			defer otherResp.Body.Close()

			var otherItems []pantry.Item
			decode(otherResp, &otherItems)
			Expect(otherItems).To(BeEmpty())

			var items []pantry.Item
			decode(do("GET", "/api/items", "", nil), &items)
			Expect(items).To(HaveLen(1))
		})
	})

	Describe("basic auth", func() {
		BeforeEach(func() {
			auth = BasicAuth{Username: "cook", Password: "secret"}
			setupServer()
		})

		It("rejects requests without credentials", func() {
			resp := do("GET", "/api/items", "", nil)
			Expect(resp.StatusCode).To(Equal(http.StatusUnauthorized))
			Expect(resp.Header.Get("WWW-Authenticate")).To(ContainSubstring("Basic"))
		})

		It("rejects wrong credentials", func() {
			req, err := http.NewRequest("GET", ghttpServer.URL()+"/api/items", nil)
			Expect(err).NotTo(HaveOccurred())
			req.SetBasicAuth("cook", "wrong")
			resp, err := client.Do(req)
			Expect(err).NotTo(HaveOccurred())
			defer resp.Body.Close()
			Expect(resp.StatusCode).To(Equal(http.StatusUnauthorized))
		})

		It("accepts valid credentials", func() {
			req, err := http.NewRequest("GET", ghttpServer.URL()+"/api/items", nil)
			Expect(err).NotTo(HaveOccurred())
			req.Header.Set("Authorization", "Basic "+base64.StdEncoding.EncodeToString([]byte("cook:secret")))
			resp, err := client.Do(req)
			Expect(err).NotTo(HaveOccurred())
			defer resp.Body.Close()
			Expect(resp.StatusCode).To(Equal(http.StatusOK))
		})
	})

	Describe("items", func() {
		It("adds an item with an estimated expiry", func() {
			resp := doJSON("POST", "/api/items", AddItemRequest{Name: "Whole milk", PurchaseDate: "2024-03-01", FoodType: "milk", Quantity: 2})
			Expect(resp.StatusCode).To(Equal(http.StatusCreated))

			var item pantry.Item
			decode(resp, &item)
			Expect(item).To(Equal(pantry.Item{Name: "Whole milk", PurchaseDate: "2024-03-01", ExpiryDate: "2024-03-08", Quantity: 2}))
		})

		It("rejects an item without a name", func() {
			resp := doJSON("POST", "/api/items", AddItemRequest{Quantity: 1})
			Expect(resp.StatusCode).To(Equal(http.StatusBadRequest))

			var body map[string]string
			decode(resp, &body)
			Expect(body["error"]).To(Equal(ErrNameRequired.Error()))
		})

		It("rejects malformed JSON", func() {
			resp := do("POST", "/api/items", "application/json", strings.NewReader("{"))
			Expect(resp.StatusCode).To(Equal(http.StatusBadRequest))
		})

		It("replaces and removes items", func() {
			resp := doJSON("PUT", "/api/items", []pantry.Item{{Name: "milk"}, {Name: "eggs"}, {Name: ""}})
			Expect(resp.StatusCode).To(Equal(http.StatusOK))
			var stored []pantry.Item
			decode(resp, &stored)
			Expect(stored).To(HaveLen(2))

			resp = doJSON("POST", "/api/items/remove", map[string][]string{"names": {"MILK"}})
			Expect(resp.StatusCode).To(Equal(http.StatusOK))
			var removed map[string]int
			decode(resp, &removed)
			Expect(removed["removed"]).To(Equal(1))

			var items []pantry.Item
			decode(do("GET", "/api/items", "", nil), &items)
			Expect(items).To(Equal([]pantry.Item{{Name: "eggs", Quantity: 1}}))
		})
	})

	Describe("POST /api/estimate", func() {
		It("returns the estimated date and kind", func() {
			resp := doJSON("POST", "/api/estimate", map[string]string{"purchase_date": "2024-03-01", "food_type": "Milk"})
			Expect(resp.StatusCode).To(Equal(http.StatusOK))

			var body map[string]string
			decode(resp, &body)
			Expect(body).To(Equal(map[string]string{"expiry_date": "2024-03-08", "kind": "date"}))
		})

		It("reports foods that never expire", func() {
			var body map[string]string
			decode(doJSON("POST", "/api/estimate", map[string]string{"food_type": "honey"}), &body)
			Expect(body).To(Equal(map[string]string{"expiry_date": "", "kind": "no_expiry"}))
		})

		It("requires a food type", func() {
			resp := doJSON("POST", "/api/estimate", map[string]string{"purchase_date": "2024-03-01"})
			Expect(resp.StatusCode).To(Equal(http.StatusBadRequest))
		})
	})

	Describe("expiry views", func() {
		BeforeEach(func() {
			doJSON("PUT", "/api/items", []pantry.Item{
				{Name: "later", ExpiryDate: "2024-03-30"},
				{Name: "soon", ExpiryDate: "2024-03-12"},
				{Name: "gone", ExpiryDate: "2024-03-05"},
				{Name: "undated"},
			})
		})

		It("lists overdue and soon expiring items", func() {
			resp := do("GET", "/api/expiring", "", nil)
			Expect(resp.StatusCode).To(Equal(http.StatusOK))

			var soon []pantry.Expiring
			decode(resp, &soon)
			Expect(itemNames(soon)).To(Equal([]string{"gone", "soon"}))
			Expect(soon[0].Overdue).To(BeTrue())
			Expect(soon[0].DaysLeft).To(Equal(-5))
			Expect(soon[1].DaysLeft).To(Equal(2))
		})

		It("accepts a custom window", func() {
			var soon []pantry.Expiring
			decode(do("GET", "/api/expiring?days=30", "", nil), &soon)
			Expect(itemNames(soon)).To(Equal([]string{"gone", "soon", "later"}))
		})

		It("rejects a bad window", func() {
			resp := do("GET", "/api/expiring?days=soon", "", nil)
			Expect(resp.StatusCode).To(Equal(http.StatusBadRequest))
		})

		It("returns the calendar of dated items", func() {
			var entries []pantry.CalendarEntry
			decode(do("GET", "/api/calendar", "", nil), &entries)
			Expect(entries).To(HaveLen(3))
			Expect(entries[0].Name).To(Equal("later"))
			Expect(entries[0].Quantity).To(Equal(1))
		})
	})

	Describe("receipt review", func() {
		It("stages, shows and confirms a receipt", func() {
			resp := upload("/api/receipts/scan", "receipt.png", []byte("png bytes"))
			Expect(resp.StatusCode).To(Equal(http.StatusOK))
			var batch pantry.Batch
			decode(resp, &batch)
			Expect(batch.Items).To(HaveLen(2))
			Expect(batch.ContentType).To(Equal("image/png"))

			var items []pantry.Item
			decode(do("GET", "/api/items", "", nil), &items)
			Expect(items).To(BeEmpty())

			resp = do("GET", "/api/receipts/staged", "", nil)
			Expect(resp.StatusCode).To(Equal(http.StatusOK))

			resp = do("GET", "/api/receipts/staged/image", "", nil)
			Expect(resp.StatusCode).To(Equal(http.StatusOK))
			Expect(resp.Header.Get("Content-Type")).To(Equal("image/png"))
			image, err := io.ReadAll(resp.Body)
			Expect(err).NotTo(HaveOccurred())
			Expect(string(image)).To(Equal("png bytes"))

			resp = doJSON("POST", "/api/receipts/confirm", map[string][]pantry.Item{
				"items": {{Name: "milk", ExpiryDate: "2024-03-17", Quantity: 2}},
			})
			Expect(resp.StatusCode).To(Equal(http.StatusCreated))

			decode(do("GET", "/api/items", "", nil), &items)
			Expect(items).To(Equal([]pantry.Item{{Name: "milk", ExpiryDate: "2024-03-17", Quantity: 2}}))

			resp = do("GET", "/api/receipts/staged", "", nil)
			Expect(resp.StatusCode).To(Equal(http.StatusNotFound))
		})

		It("confirms the batch as extracted with an empty body", func() {
			upload("/api/receipts/scan", "receipt.png", []byte("png bytes"))

			resp := do("POST", "/api/receipts/confirm", "", nil)
			Expect(resp.StatusCode).To(Equal(http.StatusCreated))

			var items []pantry.Item
			decode(do("GET", "/api/items", "", nil), &items)
			Expect(itemNamesOf(items)).To(Equal([]string{"milk", "eggs"}))
		})

		It("refuses a second confirm", func() {
			upload("/api/receipts/scan", "receipt.png", []byte("png bytes"))
			do("POST", "/api/receipts/confirm", "", nil)

			resp := do("POST", "/api/receipts/confirm", "", nil)
			Expect(resp.StatusCode).To(Equal(http.StatusConflict))

			var items []pantry.Item
			decode(do("GET", "/api/items", "", nil), &items)
			Expect(items).To(HaveLen(2))
		})

		It("discards a batch", func() {
			upload("/api/receipts/scan", "receipt.png", []byte("png bytes"))

			resp := do("DELETE", "/api/receipts/staged", "", nil)
			Expect(resp.StatusCode).To(Equal(http.StatusNoContent))
			Expect(storage.count()).To(Equal(0))

			resp = do("DELETE", "/api/receipts/staged", "", nil)
			Expect(resp.StatusCode).To(Equal(http.StatusNotFound))
		})

		It("reports scan failures", func() {
			scanner.scanErr = errUnavailable

			resp := upload("/api/receipts/scan", "receipt.png", []byte("png bytes"))
			Expect(resp.StatusCode).To(Equal(http.StatusBadRequest))

			var body map[string]string
			decode(resp, &body)
			Expect(body["error"]).To(ContainSubstring("service unavailable"))
		})

		It("requires a file", func() {
			var buf bytes.Buffer
			writer := multipart.NewWriter(&buf)
			Expect(writer.WriteField("note", "no file")).To(Succeed())
			Expect(writer.Close()).To(Succeed())

			resp := do("POST", "/api/receipts/scan", writer.FormDataContentType(), &buf)
			Expect(resp.StatusCode).To(Equal(http.StatusBadRequest))
		})
	})

	Describe("import and export", func() {
		It("imports a raw JSON body", func() {
			resp := do("POST", "/api/import", "application/json", strings.NewReader(`[{"name":"milk","purchase_date":"2024-03-01","quantity":0}]`))
			Expect(resp.StatusCode).To(Equal(http.StatusCreated))

			var items []pantry.Item
			decode(resp, &items)
			Expect(items).To(Equal([]pantry.Item{{Name: "milk", PurchaseDate: "2024-03-01", ExpiryDate: "2024-03-08", Quantity: 1}}))
		})

		It("imports an uploaded file", func() {
			resp := upload("/api/import", "pantry.json", []byte(`[{"name":"eggs"}]`))
			Expect(resp.StatusCode).To(Equal(http.StatusCreated))

			var items []pantry.Item
			decode(do("GET", "/api/items", "", nil), &items)
			Expect(items).To(Equal([]pantry.Item{{Name: "eggs", PurchaseDate: "2024-03-10", ExpiryDate: "2024-04-09", Quantity: 1}}))
		})

		It("imports the good records of a partly malformed list", func() {
			resp := do("POST", "/api/import", "application/json", strings.NewReader(`[{"name":"milk","expiry_date":"2024-03-17"},{"name":"eggs","quantity":"2"}]`))
			Expect(resp.StatusCode).To(Equal(http.StatusCreated))

			var items []pantry.Item
			decode(resp, &items)
			Expect(itemNamesOf(items)).To(Equal([]string{"milk"}))
		})

		It("rejects invalid JSON", func() {
			resp := do("POST", "/api/import", "application/json", strings.NewReader(`not json`))
			Expect(resp.StatusCode).To(Equal(http.StatusBadRequest))
		})

		It("exports the pantry as a download", func() {
			doJSON("PUT", "/api/items", []pantry.Item{{Name: "milk", ExpiryDate: "2024-03-17"}})

			resp := do("GET", "/api/export", "", nil)
			Expect(resp.StatusCode).To(Equal(http.StatusOK))
			Expect(resp.Header.Get("Content-Disposition")).To(ContainSubstring("pantry.json"))

			var items []pantry.Item
			decode(resp, &items)
			Expect(items).To(Equal([]pantry.Item{{Name: "milk", ExpiryDate: "2024-03-17", Quantity: 1}}))
		})
	})

	Describe("snapshots", func() {
		It("saves, lists, restores and deletes snapshots", func() {
			doJSON("PUT", "/api/items", []pantry.Item{{Name: "milk"}})

			resp := doJSON("POST", "/api/snapshots", map[string]string{"name": "week 10"})
			Expect(resp.StatusCode).To(Equal(http.StatusCreated))

			var snapshots []pantry.Snapshot
			decode(do("GET", "/api/snapshots", "", nil), &snapshots)
			Expect(snapshots).To(HaveLen(1))
			Expect(snapshots[0].Name).To(Equal("week 10"))

			doJSON("PUT", "/api/items", []pantry.Item{})
			resp = do("POST", "/api/snapshots/week%2010/restore", "", nil)
			Expect(resp.StatusCode).To(Equal(http.StatusOK))

			var items []pantry.Item
			decode(do("GET", "/api/items", "", nil), &items)
			Expect(itemNamesOf(items)).To(Equal([]string{"milk"}))

			resp = do("DELETE", "/api/snapshots/week%2010", "", nil)
			Expect(resp.StatusCode).To(Equal(http.StatusNoContent))
		})

		It("returns 404 for an unknown snapshot", func() {
			resp := do("POST", "/api/snapshots/missing/restore", "", nil)
			Expect(resp.StatusCode).To(Equal(http.StatusNotFound))
		})

		It("requires a name", func() {
			resp := doJSON("POST", "/api/snapshots", map[string]string{"name": " "})
			Expect(resp.StatusCode).To(Equal(http.StatusBadRequest))
		})

		When("no archive is configured", func() {
			BeforeEach(func() {
				archive = nil
				setupServer()
			})

			It("returns 501", func() {
				resp := do("GET", "/api/snapshots", "", nil)
				Expect(resp.StatusCode).To(Equal(http.StatusNotImplemented))
			})
		})
	})

	Describe("recipe assistant", func() {
		BeforeEach(func() {
			doJSON("PUT", "/api/items", []pantry.Item{
				{Name: "milk", ExpiryDate: "2024-03-12"},
				{Name: "eggs", ExpiryDate: "2024-04-01"},
				{Name: "rice"},
			})
		})

		It("returns the preferences and their choices", func() {
			var body struct {
				Preferences map[string]any `json:"preferences"`
				Cuisines    []string       `json:"cuisines"`
				MealTypes   []string       `json:"meal_types"`
			}
			decode(do("GET", "/api/preferences", "", nil), &body)
			Expect(body.Preferences).To(HaveKeyWithValue("max_minutes", BeNumerically("==", 30)))
			Expect(body.Cuisines).To(ContainElement("Any"))
			Expect(body.MealTypes).To(ContainElement("Dinner"))
		})

		It("stores normalized preferences", func() {
			resp := doJSON("PUT", "/api/preferences", map[string]any{"cuisine": "Mexican", "meal_type": "Lunch", "max_minutes": 2})
			Expect(resp.StatusCode).To(Equal(http.StatusOK))

			var prefs map[string]any
			decode(resp, &prefs)
			Expect(prefs).To(HaveKeyWithValue("max_minutes", BeNumerically("==", 5)))
		})

		It("chats, downloads the recipe and consumes its ingredients", func() {
			resp := doJSON("POST", "/api/chat", map[string]string{"message": "Breakfast idea?"})
			Expect(resp.StatusCode).To(Equal(http.StatusOK))
			var reply map[string]string
			decode(resp, &reply)
			Expect(reply["reply"]).To(Equal(generator.reply))

			var history struct {
				Greeting string           `json:"greeting"`
				Messages []map[string]any `json:"messages"`
				Recipe   string           `json:"recipe"`
			}
			decode(do("GET", "/api/chat", "", nil), &history)
			Expect(history.Greeting).NotTo(BeEmpty())
			Expect(history.Messages).To(HaveLen(2))
			Expect(history.Recipe).To(Equal(generator.reply))

			resp = do("GET", "/api/recipe", "", nil)
			Expect(resp.StatusCode).To(Equal(http.StatusOK))
			Expect(resp.Header.Get("Content-Disposition")).To(ContainSubstring("recipe_2024-03-10.txt"))

			resp = do("POST", "/api/chat/consume", "", nil)
			Expect(resp.StatusCode).To(Equal(http.StatusOK))
			var consumed map[string][]string
			decode(resp, &consumed)
			Expect(consumed["removed"]).To(ConsistOf("milk", "eggs"))

			var items []pantry.Item
			decode(do("GET", "/api/items", "", nil), &items)
			Expect(itemNamesOf(items)).To(Equal([]string{"rice"}))
		})

		It("reports assistant failures", func() {
			generator.err = errUnavailable

			resp := doJSON("POST", "/api/chat", map[string]string{"message": "hello"})
			Expect(resp.StatusCode).To(Equal(http.StatusBadGateway))
			var body map[string]string
			decode(resp, &body)
			Expect(body["error"]).To(HavePrefix("Error: "))
		})

		It("rejects an empty message", func() {
			resp := doJSON("POST", "/api/chat", map[string]string{"message": "  "})
			Expect(resp.StatusCode).To(Equal(http.StatusBadRequest))
		})

		It("resets the conversation", func() {
			doJSON("POST", "/api/chat", map[string]string{"message": "hello"})

			resp := do("POST", "/api/chat/reset", "", nil)
			Expect(resp.StatusCode).To(Equal(http.StatusNoContent))

			resp = do("GET", "/api/recipe", "", nil)
			Expect(resp.StatusCode).To(Equal(http.StatusNotFound))
			resp = do("POST", "/api/chat/consume", "", nil)
			Expect(resp.StatusCode).To(Equal(http.StatusConflict))
		})
	})
})

var _ = Describe("uploadContentType", func() {
	DescribeTable("picks a MIME type",
		func(declared string, filename string, expected string) {
			Expect(uploadContentType(declared, filename)).To(Equal(expected))
		},
		Entry("declared type wins", "image/PNG", "receipt.jpg", "image/png"),
		Entry("octet-stream falls back to the extension", "application/octet-stream", "receipt.HEIC", "image/heic"),
		Entry("missing type, pdf", "", "scan.pdf", "application/pdf"),
		Entry("missing type, jpeg", "", "photo.jpeg", "image/jpeg"),
		Entry("unknown extension", "", "notes.txt", "application/octet-stream"),
	)
})
