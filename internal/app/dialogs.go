package app

import (
	"errors"
	"image"
	"path/filepath"

	"github.com/sqweek/dialog"
	"go.uber.org/zap"

	"github.com/Faultbox/cubeview/internal/imageio"
	"github.com/Faultbox/cubeview/internal/logger"
	"github.com/Faultbox/cubeview/internal/viewer"
)

// openDialog asks for a cube map directory. The dialog blocks, so it runs on
// its own goroutine and hands the choice back through pendingDir.
func (a *App) openDialog() {
	go func() {
		dir, err := dialog.Directory().Title("Open cube map directory").Browse()
		if err != nil {
			if !errors.Is(err, dialog.ErrCancelled) {
				a.log.Error("directory dialog", zap.Error(err))
			}
			return
		}
		select {
		case a.pendingDir <- dir:
		default:
			a.log.Warn("cube map load already pending", zap.String("dir", dir))
		}
	}()
}

// openCubemap runs on the main loop.
func (a *App) openCubemap(dir string) {
	cc := a.cfg.Cubemap
	cc.Dir = dir
	cc.Calibration = false

	cm, err := viewer.LoadCubemap(cc)
	if err != nil {
		a.log.Error("loading cube map", zap.String("dir", dir), zap.Error(err))
		go dialog.Message("Could not load cube map from %s:\n%v", dir, err).Title("cubeview").Error()
		return
	}
	a.renderer.Stage().SetCubemap(cm)
	a.window.SetTitle("cubeview - " + cm.Name())
	a.cfg.Cubemap = cc
	a.log.Info("cube map loaded", zap.String("name", cm.Name()), zap.Int("size", cm.Size()))

	if a.watcher != nil {
		if err := a.watcher.Close(); err != nil {
			a.log.Warn("closing watcher", zap.Error(err))
		}
		a.watcher = nil
	}
	if cc.Watch {
		w, err := viewer.NewWatcher(dir, cc.WatchDebounce, a.renderer.Stage().SetCubemap, logger.Named("watch"))
		if err != nil {
			a.log.Warn("hot reload disabled", zap.Error(err))
			return
		}
		a.watcher = w
		a.watcher.Start()
	}
}

// saveAsDialog saves a copy of the latest frame under a user chosen name.
func (a *App) saveAsDialog() {
	if a.latest == nil {
		a.log.Warn("no frame to save yet")
		return
	}
	img := cloneRGBA(a.latest.Img)
	go func() {
		name, err := dialog.File().
			Filter("PNG image", "png").
			Filter("JPEG image", "jpg", "jpeg").
			Filter("BMP image", "bmp").
			Filter("WebP image", "webp").
			Filter("TIFF image", "tif", "tiff").
			Title("Save image").
			Save()
		if err != nil {
			if !errors.Is(err, dialog.ErrCancelled) {
				a.log.Error("save dialog", zap.Error(err))
			}
			return
		}
		if filepath.Ext(name) == "" {
			name += imageio.PNG.Ext()
		}
		if err := imageio.Save(img, name); err != nil {
			a.log.Error("saving image", zap.String("file", name), zap.Error(err))
			dialog.Message("Could not save %s:\n%v", name, err).Title("cubeview").Error()
			return
		}
		a.log.Info("image saved", zap.String("file", name))
	}()
}

func cloneRGBA(src *image.RGBA) *image.RGBA {
	dst := image.NewRGBA(src.Rect)
	copy(dst.Pix, src.Pix)
	return dst
}
