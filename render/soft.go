// Copyright 2026 The gostim Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package render defines the renderer backend contract and provides the
// CPU software backend. A backend turns one recorded scene into pixels in
// an intermediate linear-light texture; everything downstream (gamma,
// present) is the compositor's business.
package render

import (
	"fmt"
	"image"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/disintegration/imaging"
	"github.com/google/uuid"

	// Register decoders beyond the stdlib set for CreateBitmapFromPath.
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/gostim/gostim"
	"github.com/gostim/gostim/scene"
)

// SoftBackend is the CPU rasterizer backend. It flattens recorded paths,
// fills them with scanline coverage, blends in linear float32, and uploads
// the result as RGBA16Float texels.
//
// SoftBackend is not safe for concurrent use.
type SoftBackend struct{}

// NewSoftBackend creates a CPU rasterizer backend.
func NewSoftBackend() *SoftBackend {
	return &SoftBackend{}
}

var _ Backend = (*SoftBackend)(nil)

// CreateScene creates an empty scene for a target of the given size.
func (b *SoftBackend) CreateScene(width, height uint32) *scene.Scene {
	return scene.New(width, height)
}

// RenderToBuffer rasterizes the scene into a linear RGBA float32 buffer of
// len 4*w*h, consuming the scene. This is the GPU-free path; RenderToTexture
// wraps it with an upload.
func (b *SoftBackend) RenderToBuffer(sc *scene.Scene, width, height uint32) ([]float32, error) {
	ops, err := sc.Consume()
	if err != nil {
		return nil, err
	}
	r := newRaster(int(width), int(height), sc.Background())
	if err := r.replay(ops); err != nil {
		return nil, err
	}
	return r.unpremultiplied(), nil
}

// RenderToTexture rasterizes the scene and uploads the pixels into dst,
// which must be an RGBA16Float texture of matching size.
func (b *SoftBackend) RenderToTexture(device *wgpu.Device, queue *wgpu.Queue, dst *wgpu.Texture, width, height uint32, sc *scene.Scene) error {
	if sc.Width() != width || sc.Height() != height {
		return &gostim.ParameterError{
			Op:  "render",
			Msg: fmt.Sprintf("scene size %dx%d does not match target %dx%d", sc.Width(), sc.Height(), width, height),
		}
	}
	if queue == nil || dst == nil {
		return &gostim.ResourceError{Resource: "render target", Err: fmt.Errorf("missing queue or destination texture")}
	}

	buf, err := b.RenderToBuffer(sc, width, height)
	if err != nil {
		return err
	}

	queue.WriteTexture(
		&wgpu.ImageCopyTexture{
			Aspect:   wgpu.TextureAspectAll,
			Texture:  dst,
			MipLevel: 0,
			Origin:   wgpu.Origin3D{},
		},
		encodeRGBA16Float(buf),
		&wgpu.TextureDataLayout{
			Offset:       0,
			BytesPerRow:  8 * width,
			RowsPerImage: height,
		},
		&wgpu.Extent3D{Width: width, Height: height, DepthOrArrayLayers: 1},
	)
	return nil
}

// CreateBitmapFromPath decodes an image file into a raster bitmap.
// The file's pixels are assumed sRGB-encoded and are decoded to linear.
func (b *SoftBackend) CreateBitmapFromPath(path string) (*DynamicBitmap, error) {
	img, err := imaging.Open(path, imaging.AutoOrientation(true))
	if err != nil {
		return nil, &gostim.DecodeError{What: path, Err: err}
	}
	return b.CreateBitmapU8(imaging.Clone(img), ColorSpaceSRGB)
}

// CreateBitmapU8 wraps decoded 8-bit RGBA pixels into a raster bitmap.
func (b *SoftBackend) CreateBitmapU8(img *image.NRGBA, cs ColorSpace) (*DynamicBitmap, error) {
	if img == nil {
		return nil, &gostim.ParameterError{Op: "create bitmap", Msg: "nil image"}
	}
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	pixels := make([]float32, 4*w*h)
	i := 0
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		row := img.Pix[(y-bounds.Min.Y)*img.Stride:]
		for x := 0; x < w; x++ {
			r := float32(row[x*4]) / 255
			g := float32(row[x*4+1]) / 255
			bl := float32(row[x*4+2]) / 255
			a := float32(row[x*4+3]) / 255
			if cs == ColorSpaceSRGB {
				r = gostim.SRGBToLinear(r)
				g = gostim.SRGBToLinear(g)
				bl = gostim.SRGBToLinear(bl)
			}
			pixels[i], pixels[i+1], pixels[i+2], pixels[i+3] = r, g, bl, a
			i += 4
		}
	}
	return &DynamicBitmap{
		id: uuid.New(), kind: BitmapRaster,
		width: w, height: h, pixels: pixels,
	}, nil
}

// CreateBitmapF32 wraps a float32 RGBA buffer of len 4*w*h into a raster
// bitmap.
func (b *SoftBackend) CreateBitmapF32(width, height int, data []float32, cs ColorSpace) (*DynamicBitmap, error) {
	if len(data) != 4*width*height {
		return nil, &gostim.ParameterError{
			Op:  "create bitmap",
			Msg: fmt.Sprintf("buffer has %d floats, want %d for %dx%d", len(data), 4*width*height, width, height),
		}
	}
	pixels := make([]float32, len(data))
	copy(pixels, data)
	if cs == ColorSpaceSRGB {
		for i := 0; i < len(pixels); i += 4 {
			pixels[i] = gostim.SRGBToLinear(pixels[i])
			pixels[i+1] = gostim.SRGBToLinear(pixels[i+1])
			pixels[i+2] = gostim.SRGBToLinear(pixels[i+2])
		}
	}
	return &DynamicBitmap{
		id: uuid.New(), kind: BitmapRaster,
		width: width, height: height, pixels: pixels,
	}, nil
}

// CreateBitmapFromTexture wraps a GPU texture. The software rasterizer
// cannot sample it, so brushes using it fail at render time, but the
// handle can be passed through to GPU-side consumers.
func (b *SoftBackend) CreateBitmapFromTexture(tex *wgpu.Texture, width, height int, cs ColorSpace) (*DynamicBitmap, error) {
	if tex == nil {
		return nil, &gostim.ResourceError{Resource: "bitmap texture", Err: fmt.Errorf("nil texture")}
	}
	_ = cs
	return &DynamicBitmap{
		id: uuid.New(), kind: BitmapTexture,
		width: width, height: height, tex: tex,
	}, nil
}

// LoadFontFace parses TTF/OTF/TTC font data into a face.
func (b *SoftBackend) LoadFontFace(data []byte, index int) (*FontFace, error) {
	return parseFontFace(data, index)
}
