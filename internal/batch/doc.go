// Package batch runs shadow detection over directories of aerial images.
//
// A run has two phases. The threshold phase reads every jump-th image of the
// threshold directory, keeps every sub-th pixel along each axis, and
// estimates one global threshold. The mask phase applies that threshold to
// every image of the input directory at full resolution and writes
// mask_<name>.tif (0 = shadow, 255 = clear) to the output directory, plus
// masked_<name>.jpg when overlays are enabled.
//
// # Layouts
//
// In colour mode images are matched with prefix + "*" + ext_rgb in the
// input directory; the prefix applies to the mask phase only. In NIR mode
// colour images are read from <dir>/RVB and each is paired with the
// near-infrared image of the same base name in <dir>/PIR.
//
// A failure on any image stops the run with an error naming the file. No
// default threshold is ever substituted.
package batch
