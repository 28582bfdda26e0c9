package routes

import (
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/kataras/iris/v12"

	"github.com/adya-r/travelgo/utils"
)

const maxUploadSize = 32 << 20

// UploadHandler stores listing photos on local disk under a directory
// that main serves publicly at /uploads.
type UploadHandler struct {
	Dir string
}

func NewUploadHandler(dir string) *UploadHandler {
	return &UploadHandler{Dir: dir}
}

type UploadByLinkInput struct {
	Link string `json:"link" validate:"required,url"`
}

// ByLink downloads a remote image and stores it under a fresh name.
func (h *UploadHandler) ByLink(ctx iris.Context) {
	var input UploadByLinkInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	resp, err := http.Get(input.Link)
	if err != nil {
		utils.CreateError(iris.StatusBadRequest, "Upload Error", "Could not download the linked image.", ctx)
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		utils.CreateError(iris.StatusBadRequest, "Upload Error", "Could not download the linked image.", ctx)
		return
	}

	name := uuid.NewString() + linkExtension(input.Link)
	if err := h.saveStream(name, resp.Body); err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(name)
}

// Photos stores every file of the multipart "photos" field and returns
// the generated names in upload order.
func (h *UploadHandler) Photos(ctx iris.Context) {
	if err := ctx.Request().ParseMultipartForm(maxUploadSize); err != nil {
		utils.CreateError(iris.StatusBadRequest, "Upload Error", "Malformed multipart request.", ctx)
		return
	}

	files := ctx.Request().MultipartForm.File["photos"]

	names := make([]string, 0, len(files))
	for _, header := range files {
		file, err := header.Open()
		if err != nil {
			utils.CreateInternalServerError(ctx)
			return
		}

		name := uuid.NewString() + filepath.Ext(header.Filename)
		saveErr := h.saveStream(name, file)
		file.Close()
		if saveErr != nil {
			utils.CreateInternalServerError(ctx)
			return
		}

		names = append(names, name)
	}

	ctx.JSON(names)
}

func (h *UploadHandler) saveStream(name string, src io.Reader) error {
	if err := os.MkdirAll(h.Dir, 0o755); err != nil {
		return err
	}

	dst, err := os.Create(filepath.Join(h.Dir, name))
	if err != nil {
		return err
	}
	defer dst.Close()

	_, err = io.Copy(dst, src)
	return err
}

// linkExtension keeps the extension of the remote file when the URL
// has one, defaulting to .jpg like the photos the form sends.
func linkExtension(link string) string {
	parsed, err := url.Parse(link)
	if err != nil {
		return ".jpg"
	}
	if ext := path.Ext(parsed.Path); ext != "" {
		return ext
	}
	return ".jpg"
}
