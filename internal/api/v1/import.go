package v1

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ankur-mali/carbonaegis-v2.0/internal/calculator"
)

// Import 导入活动数据 Excel，解析并汇总
// POST /api/import
func (h *Handler) Import(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "无效的表单数据"})
		return
	}

	files := form.File["file"]
	if len(files) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "未找到上传文件"})
		return
	}

	uploadedFile := files[0]
	ext := strings.ToLower(filepath.Ext(uploadedFile.Filename))
	if ext != ".xlsx" && ext != ".xlsm" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "仅支持 .xlsx / .xlsm 文件"})
		return
	}

	// 保存到临时目录
	tempFilePath := filepath.Join(os.TempDir(), fmt.Sprintf("carbonaegis_import_%d_%s", time.Now().Unix(), uploadedFile.Filename))
	if err := c.SaveUploadedFile(uploadedFile, tempFilePath); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "保存文件失败"})
		return
	}
	defer os.Remove(tempFilePath)

	result, err := h.importer.ParseFile(tempFilePath)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "解析文件失败: " + err.Error()})
		return
	}

	summary, err := calculator.Summarize(result.Entries)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "汇总导入数据失败: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"sheetName": result.SheetName,
		"rowCount":  result.RowCount,
		"entries":   result.Entries,
		"problems":  result.Problems,
		"summary":   summary,
	})
}
