package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"vaultapi/internal/http/middleware"
	"vaultapi/internal/model"
	"vaultapi/internal/service"
)

// itemPayload is a VaultItem plus its display size. Sizes are stored as exact
// bytes and formatted only here, at the edge.
type itemPayload struct {
	model.VaultItem
	Size string `json:"size,omitempty"`
}

func itemJSON(it model.VaultItem) itemPayload {
	p := itemPayload{VaultItem: it}
	if !it.IsFolder {
		p.Size = model.FormatSize(it.SizeBytes)
	}
	return p
}

func itemsJSON(items []model.VaultItem) []itemPayload {
	out := make([]itemPayload, 0, len(items))
	for _, it := range items {
		out = append(out, itemJSON(it))
	}
	return out
}

// ListItems handles GET /api/files/all.
func ListItems(svc service.VaultService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		items, err := svc.List(c.UserContext(), middleware.UserID(c))
		if err != nil {
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
		return c.JSON(fiber.Map{"success": true, "files": itemsJSON(items)})
	}
}

// SearchItems handles GET /api/files/search?query=.
func SearchItems(svc service.VaultService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		results, err := svc.Search(c.UserContext(), middleware.UserID(c), c.Query("query"))
		if err != nil {
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
		return c.JSON(fiber.Map{"success": true, "results": itemsJSON(results)})
	}
}

// ActivityLogs handles GET /api/files/logs. Degrades to an empty list rather
// than an error so the activity panel never breaks the page.
func ActivityLogs(svc service.VaultService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		logs := svc.Logs(c.UserContext(), middleware.UserID(c))
		return c.JSON(fiber.Map{"success": true, "logs": logs})
	}
}

type createFolderRequest struct {
	Name     string `json:"name"`
	ParentID string `json:"parent_id"`
}

// CreateFolder handles POST /api/files/create-folder.
func CreateFolder(svc service.VaultService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req createFolderRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid request body")
		}

		folder, err := svc.CreateFolder(c.UserContext(), middleware.UserID(c), req.Name, req.ParentID)
		if err != nil {
			switch {
			case errors.Is(err, service.ErrNameRequired):
				return writeError(c, fiber.StatusBadRequest, "NAME_REQUIRED", "folder name is required")
			case errors.Is(err, service.ErrInvalidParent):
				return writeError(c, fiber.StatusBadRequest, "INVALID_PARENT", "parent is not a folder")
			default:
				return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
			}
		}

		return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "folder": itemJSON(*folder)})
	}
}

// UploadFile handles POST /api/files/upload (multipart/form-data, field name: file).
func UploadFile(svc service.VaultService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		fh, err := c.FormFile("file")
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "FILE_REQUIRED", "file is required")
		}

		f, err := fh.Open()
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "FILE_OPEN_ERROR", "cannot open uploaded file")
		}
		defer f.Close()

		ct := fh.Header.Get("Content-Type")
		item, err := svc.Upload(c.UserContext(), middleware.UserID(c), c.FormValue("parent_id"), f, fh.Filename, ct, fh.Size)
		if err != nil {
			if errors.Is(err, service.ErrInvalidParent) {
				return writeError(c, fiber.StatusBadRequest, "INVALID_PARENT", "parent is not a folder")
			}
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}

		return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "file": itemJSON(*item)})
	}
}

type moveItemRequest struct {
	TargetFolderID string `json:"target_folder_id"`
}

// MoveItem handles PUT /api/files/move/:id.
func MoveItem(svc service.VaultService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req moveItemRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid request body")
		}

		item, err := svc.Move(c.UserContext(), middleware.UserID(c), c.Params("id"), req.TargetFolderID)
		if err != nil {
			switch {
			case errors.Is(err, service.ErrNotFound):
				return writeError(c, fiber.StatusNotFound, "NOT_FOUND", "item not found")
			case errors.Is(err, service.ErrInvalidParent), errors.Is(err, service.ErrInvalidTarget):
				return writeError(c, fiber.StatusBadRequest, "INVALID_TARGET", "target is not a folder")
			default:
				return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
			}
		}

		return c.JSON(fiber.Map{"success": true, "file": itemJSON(*item)})
	}
}

type renameItemRequest struct {
	Name string `json:"name"`
}

// RenameItem handles PUT /api/files/rename/:id.
func RenameItem(svc service.VaultService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req renameItemRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid request body")
		}

		item, err := svc.Rename(c.UserContext(), middleware.UserID(c), c.Params("id"), req.Name)
		if err != nil {
			switch {
			case errors.Is(err, service.ErrNotFound):
				return writeError(c, fiber.StatusNotFound, "NOT_FOUND", "item not found")
			case errors.Is(err, service.ErrNameRequired):
				return writeError(c, fiber.StatusBadRequest, "NAME_REQUIRED", "name is required")
			default:
				return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
			}
		}

		return c.JSON(fiber.Map{"success": true, "file": itemJSON(*item)})
	}
}

// DeleteItem handles DELETE /api/files/:id. Folders are purged with their
// whole subtree.
func DeleteItem(svc service.VaultService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := svc.Delete(c.UserContext(), middleware.UserID(c), c.Params("id")); err != nil {
			if errors.Is(err, service.ErrNotFound) {
				return writeError(c, fiber.StatusNotFound, "NOT_FOUND", "item not found")
			}
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
		return c.JSON(fiber.Map{"success": true, "msg": "Item purged."})
	}
}
