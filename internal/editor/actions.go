package editor

import (
	"fmt"
	"sort"

	"go.uber.org/zap"

	"github.com/Faultbox/voxedit/internal/doc"
	"github.com/Faultbox/voxedit/internal/logger"
	"github.com/Faultbox/voxedit/pkg/math"
)

// Action is a named operation the UI can dispatch by name. Actions that
// set TouchImage get a history commit of the pre-action state, so one
// Undo after the action restores the document exactly as it was.
type Action struct {
	Name       string
	Help       string
	TouchImage bool
	Func       func(s *Session, args []any) error
}

// Register adds an action to the session registry. Registering the same
// name twice is a programming error.
func (s *Session) Register(a Action) {
	if _, ok := s.actions[a.Name]; ok {
		panic(fmt.Sprintf("editor: action %q registered twice", a.Name))
	}
	s.actions[a.Name] = a
}

// Actions returns the registered action names, sorted.
func (s *Session) Actions() []string {
	names := make([]string, 0, len(s.actions))
	for name := range s.actions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Invoke dispatches an action by name. Unknown names and malformed
// arguments are reported as errors, never panics, since action calls
// can come from scripts.
func (s *Session) Invoke(name string, args ...any) error {
	a, ok := s.actions[name]
	if !ok {
		return fmt.Errorf("editor: unknown action %q", name)
	}
	logger.Debug("invoke action", zap.String("name", name))
	if a.TouchImage {
		s.Commit()
	}
	if err := a.Func(s, args); err != nil {
		return fmt.Errorf("action %s: %w", name, err)
	}
	return nil
}

// optImage returns args[i] as *doc.Image, or nil when absent.
func optImage(args []any, i int) (*doc.Image, error) {
	if i >= len(args) || args[i] == nil {
		return nil, nil
	}
	img, ok := args[i].(*doc.Image)
	if !ok {
		return nil, fmt.Errorf("argument %d: want *doc.Image, got %T", i, args[i])
	}
	return img, nil
}

func optLayer(args []any, i int) (*doc.Layer, error) {
	if i >= len(args) || args[i] == nil {
		return nil, nil
	}
	l, ok := args[i].(*doc.Layer)
	if !ok {
		return nil, fmt.Errorf("argument %d: want *doc.Layer, got %T", i, args[i])
	}
	return l, nil
}

func optCamera(args []any, i int) (*doc.Camera, error) {
	if i >= len(args) || args[i] == nil {
		return nil, nil
	}
	c, ok := args[i].(*doc.Camera)
	if !ok {
		return nil, fmt.Errorf("argument %d: want *doc.Camera, got %T", i, args[i])
	}
	return c, nil
}

func optMaterial(args []any, i int) (*doc.Material, error) {
	if i >= len(args) || args[i] == nil {
		return nil, nil
	}
	m, ok := args[i].(*doc.Material)
	if !ok {
		return nil, fmt.Errorf("argument %d: want *doc.Material, got %T", i, args[i])
	}
	return m, nil
}

func optBox(args []any, i int) (math.Box, error) {
	if i >= len(args) || args[i] == nil {
		return math.Box{}, nil
	}
	b, ok := args[i].(math.Box)
	if !ok {
		return math.Box{}, fmt.Errorf("argument %d: want math.Box, got %T", i, args[i])
	}
	return b, nil
}

// reqInt returns args[i] as an int; missing or non-int is an error.
func reqInt(args []any, i int) (int, error) {
	if i >= len(args) {
		return 0, fmt.Errorf("argument %d: missing int", i)
	}
	n, ok := args[i].(int)
	if !ok {
		return 0, fmt.Errorf("argument %d: want int, got %T", i, args[i])
	}
	return n, nil
}

// imageLayerArgs resolves the common (image?, layer?) argument prefix.
func imageLayerArgs(args []any) (*doc.Image, *doc.Layer, error) {
	img, err := optImage(args, 0)
	if err != nil {
		return nil, nil, err
	}
	l, err := optLayer(args, 1)
	if err != nil {
		return nil, nil, err
	}
	return img, l, nil
}

func (s *Session) registerActions() {
	s.Register(Action{
		Name:       "img_new_layer",
		Help:       "Add a new empty layer above the current layers",
		TouchImage: true,
		Func: func(s *Session, args []any) error {
			img, l, err := imageLayerArgs(args)
			if err != nil {
				return err
			}
			s.AddLayer(img, l)
			return nil
		},
	})
	s.Register(Action{
		Name:       "img_del_layer",
		Help:       "Delete the current layer",
		TouchImage: true,
		Func: func(s *Session, args []any) error {
			img, l, err := imageLayerArgs(args)
			if err != nil {
				return err
			}
			s.DeleteLayer(img, l)
			return nil
		},
	})
	s.Register(Action{
		Name:       "img_move_layer",
		Help:       "Move the current layer one step in the given direction",
		TouchImage: true,
		Func: func(s *Session, args []any) error {
			img, l, err := imageLayerArgs(args)
			if err != nil {
				return err
			}
			d, err := reqInt(args, 2)
			if err != nil {
				return err
			}
			if d != -1 && d != 1 {
				return fmt.Errorf("argument 2: direction must be +1 or -1, got %d", d)
			}
			s.MoveLayer(img, l, d)
			return nil
		},
	})
	s.Register(Action{
		Name:       "img_move_layer_up",
		Help:       "Move the current layer toward the top",
		TouchImage: true,
		Func: func(s *Session, args []any) error {
			img, l, err := imageLayerArgs(args)
			if err != nil {
				return err
			}
			s.MoveLayer(img, l, +1)
			return nil
		},
	})
	s.Register(Action{
		Name:       "img_move_layer_down",
		Help:       "Move the current layer toward the bottom",
		TouchImage: true,
		Func: func(s *Session, args []any) error {
			img, l, err := imageLayerArgs(args)
			if err != nil {
				return err
			}
			s.MoveLayer(img, l, -1)
			return nil
		},
	})
	s.Register(Action{
		Name:       "img_duplicate_layer",
		Help:       "Duplicate the current layer",
		TouchImage: true,
		Func: func(s *Session, args []any) error {
			img, l, err := imageLayerArgs(args)
			if err != nil {
				return err
			}
			s.DuplicateLayer(img, l)
			return nil
		},
	})
	s.Register(Action{
		Name:       "img_clone_layer",
		Help:       "Add a layer that mirrors the current layer",
		TouchImage: true,
		Func: func(s *Session, args []any) error {
			img, l, err := imageLayerArgs(args)
			if err != nil {
				return err
			}
			s.CloneLayer(img, l)
			return nil
		},
	})
	s.Register(Action{
		Name:       "img_unclone_layer",
		Help:       "Detach the current layer from its base",
		TouchImage: true,
		Func: func(s *Session, args []any) error {
			img, l, err := imageLayerArgs(args)
			if err != nil {
				return err
			}
			s.UncloneLayer(img, l)
			return nil
		},
	})
	s.Register(Action{
		Name:       "img_select_parent_layer",
		Help:       "Select the base of the current layer",
		TouchImage: true,
		Func: func(s *Session, args []any) error {
			img, l, err := imageLayerArgs(args)
			if err != nil {
				return err
			}
			s.SelectParentLayer(img, l)
			return nil
		},
	})
	s.Register(Action{
		Name:       "img_merge_visible_layers",
		Help:       "Merge all visible layers into one",
		TouchImage: true,
		Func: func(s *Session, args []any) error {
			img, err := optImage(args, 0)
			if err != nil {
				return err
			}
			s.MergeVisibleLayers(img)
			return nil
		},
	})
	s.Register(Action{
		Name:       "layer_clear",
		Help:       "Erase the current layer, or only the selection",
		TouchImage: true,
		Func: func(s *Session, args []any) error {
			img, l, err := imageLayerArgs(args)
			if err != nil {
				return err
			}
			box, err := optBox(args, 2)
			if err != nil {
				return err
			}
			s.ClearLayer(img, l, box)
			return nil
		},
	})
	s.Register(Action{
		Name:       "img_new_shape_layer",
		Help:       "Add a procedural shape layer",
		TouchImage: true,
		Func: func(s *Session, args []any) error {
			img, err := optImage(args, 0)
			if err != nil {
				return err
			}
			s.AddShapeLayer(img)
			return nil
		},
	})
	s.Register(Action{
		Name: "img_image_layer_to_mesh",
		Help: "Convert the current layer's image into voxels",
		// Commits its own snapshot before mutating, so decode errors
		// still leave the pre-conversion state one Undo away.
		Func: func(s *Session, args []any) error {
			img, l, err := imageLayerArgs(args)
			if err != nil {
				return err
			}
			return s.ConvertRasterLayer(img, l)
		},
	})
	s.Register(Action{
		Name:       "img_new_camera",
		Help:       "Add a new camera",
		TouchImage: true,
		Func: func(s *Session, args []any) error {
			img, err := optImage(args, 0)
			if err != nil {
				return err
			}
			c, err := optCamera(args, 1)
			if err != nil {
				return err
			}
			s.AddCamera(img, c)
			return nil
		},
	})
	s.Register(Action{
		Name:       "img_del_camera",
		Help:       "Delete the current camera",
		TouchImage: true,
		Func: func(s *Session, args []any) error {
			img, err := optImage(args, 0)
			if err != nil {
				return err
			}
			c, err := optCamera(args, 1)
			if err != nil {
				return err
			}
			s.DeleteCamera(img, c)
			return nil
		},
	})
	s.Register(Action{
		Name:       "img_move_camera",
		Help:       "Move the current camera one step in the given direction",
		TouchImage: true,
		Func: func(s *Session, args []any) error {
			img, err := optImage(args, 0)
			if err != nil {
				return err
			}
			c, err := optCamera(args, 1)
			if err != nil {
				return err
			}
			d, err := reqInt(args, 2)
			if err != nil {
				return err
			}
			if d != -1 && d != 1 {
				return fmt.Errorf("argument 2: direction must be +1 or -1, got %d", d)
			}
			s.MoveCamera(img, c, d)
			return nil
		},
	})
	s.Register(Action{
		Name:       "img_move_camera_up",
		Help:       "Move the current camera toward the top",
		TouchImage: true,
		Func: func(s *Session, args []any) error {
			img, err := optImage(args, 0)
			if err != nil {
				return err
			}
			c, err := optCamera(args, 1)
			if err != nil {
				return err
			}
			s.MoveCamera(img, c, +1)
			return nil
		},
	})
	s.Register(Action{
		Name:       "img_move_camera_down",
		Help:       "Move the current camera toward the bottom",
		TouchImage: true,
		Func: func(s *Session, args []any) error {
			img, err := optImage(args, 0)
			if err != nil {
				return err
			}
			c, err := optCamera(args, 1)
			if err != nil {
				return err
			}
			s.MoveCamera(img, c, -1)
			return nil
		},
	})
	s.Register(Action{
		Name:       "img_new_material",
		Help:       "Add a new material",
		TouchImage: true,
		Func: func(s *Session, args []any) error {
			img, err := optImage(args, 0)
			if err != nil {
				return err
			}
			m, err := optMaterial(args, 1)
			if err != nil {
				return err
			}
			s.AddMaterial(img, m)
			return nil
		},
	})
	s.Register(Action{
		Name:       "img_del_material",
		Help:       "Delete the current material",
		TouchImage: true,
		Func: func(s *Session, args []any) error {
			img, err := optImage(args, 0)
			if err != nil {
				return err
			}
			m, err := optMaterial(args, 1)
			if err != nil {
				return err
			}
			s.DeleteMaterial(img, m)
			return nil
		},
	})
	s.Register(Action{
		Name: "img_undo",
		Help: "Undo the last document change",
		Func: func(s *Session, args []any) error {
			s.Undo()
			return nil
		},
	})
	s.Register(Action{
		Name: "img_redo",
		Help: "Redo the last undone change",
		Func: func(s *Session, args []any) error {
			s.Redo()
			return nil
		},
	})
}
