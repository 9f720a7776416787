package fetch_test

import (
	"errors"
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/mlutils/internal/fetch"
)

var _ = Describe("metadata catalog", func() {
	var path string

	BeforeEach(func() {
		path = filepath.Join(GinkgoT().TempDir(), "datasets_metadata.json")
		catalog := `{
  "AReM": {"download_url": "https://example.com/AReM.zip", "instances": 42240},
  "Iris": {"download_url": "https://example.com/iris.zip", "tags": ["classification"]}
}`
		Expect(os.WriteFile(path, []byte(catalog), 0644)).To(Succeed())
	})

	It("reads every entry", func() {
		cat, err := fetch.ReadJSONMetadata(path)
		Expect(err).NotTo(HaveOccurred())
		Expect(cat).To(HaveLen(2))
		Expect(cat["AReM"].DownloadURL).To(Equal("https://example.com/AReM.zip"))
		Expect(cat["AReM"].Fields).To(HaveKey("instances"))
		Expect(string(cat["Iris"].Fields["tags"])).To(Equal(`["classification"]`))
	})

	It("filters to one dataset", func() {
		info, err := fetch.DatasetMetadata(path, "Iris")
		Expect(err).NotTo(HaveOccurred())
		Expect(info.DownloadURL).To(Equal("https://example.com/iris.zip"))
	})

	It("fails for an unknown dataset", func() {
		_, err := fetch.DatasetMetadata(path, "MNIST")
		Expect(errors.Is(err, fetch.ErrUnknownDataset)).To(BeTrue())
	})

	It("fails for malformed json", func() {
		Expect(os.WriteFile(path, []byte(`{"AReM": 3}`), 0644)).To(Succeed())
		_, err := fetch.ReadJSONMetadata(path)
		Expect(err).To(HaveOccurred())
	})
})

var _ = DescribeTable("DecodeBytes",
	func(in []byte, encoding, want string) {
		got, err := fetch.DecodeBytes(in, encoding)
		Expect(err).NotTo(HaveOccurred())
		Expect(got).To(Equal(want))
	},
	Entry("default utf-8", []byte("héllo"), "", "héllo"),
	Entry("explicit utf-8", []byte("héllo"), "UTF-8", "héllo"),
	Entry("latin-1", []byte{'h', 0xe9, 'l', 'l', 'o'}, "ISO-8859-1", "héllo"),
	Entry("windows-1252", []byte{0x80}, "windows-1252", "€"),
)

var _ = Describe("DecodeLines", func() {
	It("decodes before splitting multi-byte charsets", func() {
		// "a\nb\n" in UTF-16LE with a byte order mark; the newline is 0x0a 0x00.
		in := []byte{0xff, 0xfe, 'a', 0, '\n', 0, 'b', 0, '\n', 0}
		lines, err := fetch.DecodeLines(in, "UTF-16")
		Expect(err).NotTo(HaveOccurred())
		Expect(lines).To(Equal([]string{"a\n", "b\n"}))
	})

	It("keeps a final line without newline", func() {
		lines, err := fetch.DecodeLines([]byte("x\ny"), "")
		Expect(err).NotTo(HaveOccurred())
		Expect(lines).To(Equal([]string{"x\n", "y"}))
	})

	It("returns nothing for empty input", func() {
		lines, err := fetch.DecodeLines(nil, "utf-8")
		Expect(err).NotTo(HaveOccurred())
		Expect(lines).To(BeEmpty())
	})
})

var _ = Describe("DecodeBytes errors", func() {
	It("rejects invalid utf-8", func() {
		_, err := fetch.DecodeBytes([]byte{0xff, 0xfe, 'a'}, "utf-8")
		Expect(errors.Is(err, fetch.ErrDecode)).To(BeTrue())
	})

	It("rejects unknown charsets", func() {
		_, err := fetch.DecodeBytes([]byte("a"), "no-such-charset")
		Expect(errors.Is(err, fetch.ErrUnknownEncoding)).To(BeTrue())
	})
})
