package app

import (
	"fmt"

	cli "github.com/spf13/cobra"

	"github.com/soocke/pixel-click-go/ui/images"
)

func (r *runner) commands() []*cli.Command {
	move := &cli.Command{
		Use:   "move [template]",
		Short: "Move the pointer onto the template",
		Args:  cli.MaximumNArgs(1),
		RunE:  r.move,
	}
	click := &cli.Command{
		Use:   "click [template]",
		Short: "Move onto the template and left click it",
		Args:  cli.MaximumNArgs(1),
		RunE:  r.click,
	}
	click.Flags().BoolVar(&r.cfg.Double, "double", r.cfg.Double, "double click")

	locate := &cli.Command{
		Use:   "locate [template]",
		Short: "Print the bounding box of the template nearest the pointer",
		Args:  cli.MaximumNArgs(1),
		RunE:  r.locate,
	}
	crop := &cli.Command{
		Use:   "crop [template]",
		Short: "Save the screen region around the template",
		Args:  cli.MaximumNArgs(1),
		RunE:  r.crop,
	}
	f := crop.Flags()
	f.IntVar(&r.cfg.CropLeft, "left", r.cfg.CropLeft, "pixels kept left of the box")
	f.IntVar(&r.cfg.CropRight, "right", r.cfg.CropRight, "pixels kept right of the box")
	f.IntVar(&r.cfg.CropTop, "top", r.cfg.CropTop, "pixels kept above the box")
	f.IntVar(&r.cfg.CropBottom, "bottom", r.cfg.CropBottom, "pixels kept below the box")
	f.StringVarP(&r.cfg.CropOut, "out", "o", r.cfg.CropOut, "output PNG path")

	preview := &cli.Command{
		Use:   "preview [template]",
		Short: "Show the capture with the detected box outlined",
		Args:  cli.MaximumNArgs(1),
		RunE:  r.preview,
	}
	return []*cli.Command{move, click, locate, crop, preview}
}

func (r *runner) move(cmd *cli.Command, args []string) error {
	s, err := r.session(args)
	if err != nil {
		return err
	}
	defer s.done()
	pt, ok, err := s.actuator.MoveTo(s.cfg.Template, s.cfg.Timeout, s.cfg.Threshold)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, s.cfg.Template)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%d %d\n", pt.X, pt.Y)
	return nil
}

func (r *runner) click(cmd *cli.Command, args []string) error {
	s, err := r.session(args)
	if err != nil {
		return err
	}
	defer s.done()
	pt, ok, err := s.actuator.Click(s.cfg.Template, s.cfg.Timeout, s.cfg.Threshold, s.cfg.Double)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, s.cfg.Template)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%d %d\n", pt.X, pt.Y)
	return nil
}

func (r *runner) locate(cmd *cli.Command, args []string) error {
	s, err := r.session(args)
	if err != nil {
		return err
	}
	defer s.done()
	box, ok, err := s.detector.LocateBest(s.cfg.Template, s.cfg.Threshold)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, s.cfg.Template)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "x_min=%d x_max=%d y_min=%d y_max=%d\n", box.XMin, box.XMax, box.YMin, box.YMax)
	return nil
}

func (r *runner) crop(cmd *cli.Command, args []string) error {
	s, err := r.session(args)
	if err != nil {
		return err
	}
	defer s.done()
	m, err := s.detector.Locate(s.cfg.Template, s.cfg.Threshold)
	if err != nil {
		return err
	}
	if !m.Found {
		return fmt.Errorf("%w: %s", ErrNotFound, s.cfg.Template)
	}
	margins := images.Margins{
		Left:   s.cfg.CropLeft,
		Right:  s.cfg.CropRight,
		Top:    s.cfg.CropTop,
		Bottom: s.cfg.CropBottom,
	}
	out, region, err := images.CropAround(m.Frame, m.Box.Rect(), margins)
	if err != nil {
		return err
	}
	if err := images.Save(out, s.cfg.CropOut); err != nil {
		return err
	}
	s.logger.Info("crop.saved", "path", s.cfg.CropOut, "region", region)
	fmt.Fprintln(cmd.OutOrStdout(), s.cfg.CropOut)
	return nil
}

func (r *runner) preview(_ *cli.Command, args []string) error {
	s, err := r.session(args)
	if err != nil {
		return err
	}
	m, err := s.detector.Locate(s.cfg.Template, s.cfg.Threshold)
	if err != nil {
		return err
	}
	caption := fmt.Sprintf("%s: no match at threshold %.2f", s.cfg.Template, s.cfg.Threshold)
	if m.Found {
		caption = fmt.Sprintf("%s: %v (%d candidates)", s.cfg.Template, m.Box.Rect(), m.Candidates)
	}
	s.done()
	if r.env.Preview != nil {
		r.env.Preview("Pixel Click - "+s.cfg.Template, m.Frame, m.Box.Rect(), m.Found, caption)
	}
	return nil
}
