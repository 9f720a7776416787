package fetch_test

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/mlutils/internal/fetch"
)

var payload = bytes.Repeat([]byte("0123456789abcdef"), 300)

func zipArchive(files map[string]string) []byte {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, body := range files {
		w, err := zw.Create(name)
		Expect(err).NotTo(HaveOccurred())
		_, err = io.WriteString(w, body)
		Expect(err).NotTo(HaveOccurred())
	}
	Expect(zw.Close()).To(Succeed())
	return buf.Bytes()
}

var _ = Describe("Client", func() {
	var (
		srv    *httptest.Server
		client *fetch.Client
		dir    string
		ctx    context.Context
	)

	BeforeEach(func() {
		archive := zipArchive(map[string]string{
			"data/age.csv": "id,age\n1,34\n2,51\n",
			"README":       "readme",
		})
		mux := http.NewServeMux()
		mux.HandleFunc("/file.bin", func(w http.ResponseWriter, r *http.Request) {
			w.Write(payload)
		})
		mux.HandleFunc("/missing", func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "gone", http.StatusNotFound)
		})
		mux.HandleFunc("/archive.zip", func(w http.ResponseWriter, r *http.Request) {
			w.Write(archive)
		})
		srv = httptest.NewServer(mux)
		DeferCleanup(srv.Close)

		client = fetch.New(fetch.WithLogger(log.New(io.Discard, "", 0)))
		dir = GinkgoT().TempDir()
		ctx = context.Background()
	})

	Describe("DownloadFile", func() {
		It("writes the body byte for byte", func() {
			dest := filepath.Join(dir, "file.bin")
			Expect(client.DownloadFile(ctx, srv.URL+"/file.bin", dest, 100)).To(Succeed())

			got, err := os.ReadFile(dest)
			Expect(err).NotTo(HaveOccurred())
			Expect(got).To(HaveLen(len(payload)))
			Expect(got).To(Equal(payload))

			info, err := os.Stat(dest)
			Expect(err).NotTo(HaveOccurred())
			Expect(info.Mode().Perm()).To(Equal(os.FileMode(0644)))
		})

		It("uses the default chunk size when none is given", func() {
			dest := filepath.Join(dir, "file.bin")
			Expect(client.DownloadFile(ctx, srv.URL+"/file.bin", dest, 0)).To(Succeed())
			Expect(dest).To(BeAnExistingFile())
		})

		It("fails on a non-2xx status without leaving a file", func() {
			dest := filepath.Join(dir, "missing.bin")
			err := client.DownloadFile(ctx, srv.URL+"/missing", dest, 100)

			var se *fetch.StatusError
			Expect(errors.As(err, &se)).To(BeTrue())
			Expect(se.Code).To(Equal(http.StatusNotFound))
			Expect(dest).NotTo(BeAnExistingFile())

			entries, err := os.ReadDir(dir)
			Expect(err).NotTo(HaveOccurred())
			Expect(entries).To(BeEmpty())
		})

		It("honours context cancellation", func() {
			cctx, cancel := context.WithCancel(ctx)
			cancel()
			err := client.DownloadFile(cctx, srv.URL+"/file.bin", filepath.Join(dir, "x"), 100)
			Expect(errors.Is(err, context.Canceled)).To(BeTrue())
		})
	})

	Describe("zip archives", func() {
		It("lists the archive members", func() {
			zr, err := client.FetchZip(ctx, srv.URL+"/archive.zip")
			Expect(err).NotTo(HaveOccurred())
			Expect(zr.File).To(HaveLen(2))
		})

		It("reads one member", func() {
			b, err := client.FetchZipEntry(ctx, srv.URL+"/archive.zip", "data/age.csv")
			Expect(err).NotTo(HaveOccurred())
			lines, err := fetch.DecodeLines(b, "")
			Expect(err).NotTo(HaveOccurred())
			Expect(lines).To(Equal([]string{"id,age\n", "1,34\n", "2,51\n"}))
		})

		It("reports the available members when one is missing", func() {
			_, err := client.FetchZipEntry(ctx, srv.URL+"/archive.zip", "nope.csv")

			var nf *fetch.EntryNotFoundError
			Expect(errors.As(err, &nf)).To(BeTrue())
			Expect(nf.Name).To(Equal("nope.csv"))
			Expect(nf.Available).To(ConsistOf("data/age.csv", "README"))
			Expect(err.Error()).To(ContainSubstring("data/age.csv"))
		})

		It("reads members by their stored names", func() {
			archive := zipArchive(map[string]string{
				"./a.csv":   "a\n",
				"/abs.csv":  "abs\n",
				`win\b.csv`: "win\n",
			})
			zr, err := zip.NewReader(bytes.NewReader(archive), int64(len(archive)))
			Expect(err).NotTo(HaveOccurred())

			for name, want := range map[string]string{
				"./a.csv":   "a\n",
				"/abs.csv":  "abs\n",
				`win\b.csv`: "win\n",
			} {
				b, err := fetch.ReadZipEntry(zr, name)
				Expect(err).NotTo(HaveOccurred(), name)
				Expect(string(b)).To(Equal(want))
			}

			_, err = fetch.ReadZipEntry(zr, "a.csv")
			var nf *fetch.EntryNotFoundError
			Expect(errors.As(err, &nf)).To(BeTrue())
			Expect(nf.Available).To(HaveLen(3))
		})

		It("propagates status errors", func() {
			_, err := client.FetchZip(ctx, srv.URL+"/missing")
			var se *fetch.StatusError
			Expect(errors.As(err, &se)).To(BeTrue())
		})
	})

	Describe("DownloadDataset", func() {
		It("downloads the catalog's download_url", func() {
			meta := filepath.Join(dir, "datasets_metadata.json")
			catalog := `{"AReM": {"download_url": "` + srv.URL + `/archive.zip", "size": 3}}`
			Expect(os.WriteFile(meta, []byte(catalog), 0644)).To(Succeed())

			dest, err := client.DownloadDataset(ctx, meta, "AReM", filepath.Join(dir, "out"))
			Expect(err).NotTo(HaveOccurred())
			Expect(filepath.Base(dest)).To(Equal("archive.zip"))

			zr, err := zip.OpenReader(dest)
			Expect(err).NotTo(HaveOccurred())
			defer zr.Close()
			Expect(zr.File).To(HaveLen(2))
		})

		It("rejects names missing from the catalog", func() {
			meta := filepath.Join(dir, "datasets_metadata.json")
			Expect(os.WriteFile(meta, []byte(`{}`), 0644)).To(Succeed())

			_, err := client.DownloadDataset(ctx, meta, "AReM", dir)
			Expect(errors.Is(err, fetch.ErrUnknownDataset)).To(BeTrue())
		})
	})
})

var _ = Describe("WriteLines", func() {
	It("concatenates lines without quoting", func() {
		dir := GinkgoT().TempDir()
		lines := []string{"a,\"b\"\n", "c,d\n"}
		Expect(fetch.WriteLines(dir, "out.csv", lines)).To(Succeed())

		got, err := os.ReadFile(filepath.Join(dir, "out.csv"))
		Expect(err).NotTo(HaveOccurred())
		Expect(string(got)).To(Equal(strings.Join(lines, "")))
	})
})
