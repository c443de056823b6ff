package viewer

import (
	"fmt"

	"github.com/Faultbox/cubeview/internal/config"
	"github.com/Faultbox/cubeview/internal/render"
	"github.com/Faultbox/cubeview/pkg/cubemap"
)

// ParamsFromConfig converts the viewer section into render parameters. The
// cube map is left unset.
func ParamsFromConfig(cfg *config.Config) (render.Params, error) {
	p := render.DefaultParams()
	v := cfg.Viewer

	mode, err := render.ParseMode(v.Mode)
	if err != nil {
		return p, err
	}
	ref, err := config.ParseColor(v.ReferenceColor)
	if err != nil {
		return p, fmt.Errorf("%w: %w", render.ErrInvalidConfig, err)
	}

	p.Width, p.Height = v.Width, v.Height
	p.Fov = v.Fov
	p.Mode = mode
	p.Bilinear = v.Bilinear
	p.ShowInfo = v.ShowInfo
	p.ShowReference = v.ShowReference
	p.ReferenceColor = ref
	p.EquirectOffset = v.EquirectOffset
	return p, nil
}

// Apply pushes every field of p into st. The fov is clamped like any other
// SetFov call; a zero size leaves the raster unset.
func Apply(st *render.Stage, p render.Params) error {
	if p.Width > 0 || p.Height > 0 {
		if err := st.SetRenderSize(p.Width, p.Height); err != nil {
			return err
		}
	}
	if err := st.SetMode(p.Mode); err != nil {
		return err
	}
	if err := st.SetOrientation(p.Orientation); err != nil {
		return err
	}
	if err := st.SetEquirectOffset(p.EquirectOffset); err != nil {
		return err
	}
	st.SetFov(p.Fov)
	st.SetBilinear(p.Bilinear)
	st.SetShowInfo(p.ShowInfo)
	st.SetShowReference(p.ShowReference)
	st.SetReferenceColor(p.ReferenceColor)
	if p.Cubemap != nil {
		st.SetCubemap(p.Cubemap)
	}
	return nil
}

// LoadCubemap loads the configured source: the generated calibration cube
// map or the six images in Dir.
func LoadCubemap(cfg config.CubemapConfig) (*cubemap.Cubemap, error) {
	if cfg.Calibration {
		return cubemap.Calibration(cfg.CalibrationSize)
	}
	if cfg.Dir == "" {
		return nil, fmt.Errorf("%w: no cube map directory", render.ErrInvalidConfig)
	}
	return cubemap.Load(cfg.Dir)
}
