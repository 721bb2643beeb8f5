package engine

import (
	"math"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/batchatco/go-native-netcdf/netcdf/api"
	"github.com/batchatco/go-native-netcdf/netcdf/cdf"
	"github.com/batchatco/go-native-netcdf/netcdf/util"

	"github.com/bruno-rino/harp/native"
)

func TestExportImportRoundTrip(t *testing.T) {
	e := newEngine(t)
	p, err := e.NewProduct()
	if err != nil {
		t.Fatalf("NewProduct: %v", err)
	}
	if err := e.SetSourceProduct(p, []byte("S5P_OFFL_L2__O3_____20260812T000000")); err != nil {
		t.Fatalf("SetSourceProduct: %v", err)
	}
	if err := e.SetHistory(p, []byte("harpconvert --format netcdf input.h5 output.nc")); err != nil {
		t.Fatalf("SetHistory: %v", err)
	}

	scan := mustVariable(t, e, "scan_index", native.TypeInt8,
		[]native.DimensionType{native.DimensionTime}, []int64{3})
	copy(scan.Data.Int8s(), []int8{-1, 0, 5})
	scan.ValidMin.SetInt8(0)
	scan.ValidMax.SetInt8(100)
	mustAdd(t, e, p, scan)

	elevation := mustVariable(t, e, "elevation", native.TypeInt16,
		[]native.DimensionType{native.DimensionTime, native.DimensionVertical}, []int64{3, 2})
	copy(elevation.Data.Int16s(), []int16{0, 100, 200, 300, 400, 500})
	mustAdd(t, e, p, elevation)

	count := mustVariable(t, e, "count", native.TypeInt32, nil, nil)
	count.Data.Int32s()[0] = 7
	mustAdd(t, e, p, count)

	reflectance := mustVariable(t, e, "reflectance", native.TypeFloat,
		[]native.DimensionType{native.DimensionTime}, []int64{3})
	copy(reflectance.Data.Float32s(), []float32{0.5, 0.25, 0.125})
	if err := e.SetUnit(reflectance, []byte("1")); err != nil {
		t.Fatalf("SetUnit: %v", err)
	}
	mustAdd(t, e, p, reflectance)

	radiance := mustVariable(t, e, "radiance", native.TypeFloat,
		[]native.DimensionType{native.DimensionTime, native.DimensionSpectral}, []int64{3, 4})
	for i := range radiance.Data.Float32s() {
		radiance.Data.Float32s()[i] = float32(i) * 0.5
	}
	mustAdd(t, e, p, radiance)

	altitude := mustVariable(t, e, "altitude", native.TypeDouble,
		[]native.DimensionType{native.DimensionTime}, []int64{3})
	copy(altitude.Data.Float64s(), []float64{1053.5, 1812.25, 2409})
	if err := e.SetUnit(altitude, []byte("m")); err != nil {
		t.Fatalf("SetUnit: %v", err)
	}
	if err := e.SetDescription(altitude, []byte("altitude above sea level")); err != nil {
		t.Fatalf("SetDescription: %v", err)
	}
	altitude.ValidMin.SetFloat64(0)
	altitude.ValidMax.SetFloat64(120000)
	mustAdd(t, e, p, altitude)

	grid := mustVariable(t, e, "grid", native.TypeDouble,
		[]native.DimensionType{native.DimensionTime, native.DimensionIndependent}, []int64{3, 2})
	copy(grid.Data.Float64s(), []float64{1, 2, 3, 4, 5, 6})
	mustAdd(t, e, p, grid)

	label := mustVariable(t, e, "label", native.TypeString,
		[]native.DimensionType{native.DimensionTime}, []int64{3})
	for i, s := range []string{"day", "night", ""} {
		if err := e.SetStringElement(label, int64(i), []byte(s)); err != nil {
			t.Fatalf("SetStringElement: %v", err)
		}
	}
	mustAdd(t, e, p, label)

	site := mustVariable(t, e, "site", native.TypeString, nil, nil)
	mustAdd(t, e, p, site)

	path := filepath.Join(t.TempDir(), "roundtrip.nc")
	if err := e.Export([]byte(path), []byte("netcdf"), p); err != nil {
		t.Fatalf("Export: %v", err)
	}
	q, err := e.Import([]byte(path))
	if err != nil {
		t.Fatalf("Import: %v", err)
	}

	if got := string(q.SourceProduct); got != "S5P_OFFL_L2__O3_____20260812T000000" {
		t.Errorf("source product = %q", got)
	}
	if got := string(q.History); got != "harpconvert --format netcdf input.h5 output.nc" {
		t.Errorf("history = %q", got)
	}

	wantNames := []string{
		"scan_index", "elevation", "count", "reflectance",
		"radiance", "altitude", "grid", "label", "site",
	}
	var gotNames []string
	for _, v := range q.Variables {
		gotNames = append(gotNames, string(v.Name))
	}
	if !reflect.DeepEqual(gotNames, wantNames) {
		t.Fatalf("variables = %v, want %v", gotNames, wantNames)
	}
	find := func(name string) *native.Variable {
		t.Helper()
		for _, v := range q.Variables {
			if string(v.Name) == name {
				return v
			}
		}
		t.Fatalf("variable %s missing after import", name)
		return nil
	}

	scan2 := find("scan_index")
	if scan2.DataType != native.TypeInt8 || scan2.NumDimensions != 1 ||
		scan2.DimensionType[0] != native.DimensionTime || scan2.Dimension[0] != 3 {
		t.Errorf("scan_index layout = %v %d dims", scan2.DataType, scan2.NumDimensions)
	}
	if !reflect.DeepEqual(scan2.Data.Int8s(), []int8{-1, 0, 5}) {
		t.Errorf("scan_index data = %v", scan2.Data.Int8s())
	}
	if scan2.ValidMin.Int8() != 0 || scan2.ValidMax.Int8() != 100 {
		t.Errorf("scan_index range = [%d, %d], want [0, 100]", scan2.ValidMin.Int8(), scan2.ValidMax.Int8())
	}

	elevation2 := find("elevation")
	if elevation2.NumDimensions != 2 ||
		elevation2.DimensionType[0] != native.DimensionTime || elevation2.Dimension[0] != 3 ||
		elevation2.DimensionType[1] != native.DimensionVertical || elevation2.Dimension[1] != 2 {
		t.Errorf("elevation dimensions not preserved")
	}
	if !reflect.DeepEqual(elevation2.Data.Int16s(), []int16{0, 100, 200, 300, 400, 500}) {
		t.Errorf("elevation data = %v", elevation2.Data.Int16s())
	}
	if elevation2.ValidMin.Int16() != math.MinInt16 || elevation2.ValidMax.Int16() != math.MaxInt16 {
		t.Errorf("elevation range = [%d, %d], want type defaults",
			elevation2.ValidMin.Int16(), elevation2.ValidMax.Int16())
	}

	count2 := find("count")
	if count2.NumDimensions != 0 || count2.NumElements != 1 {
		t.Errorf("count not scalar after import")
	}
	if count2.Data.Int32s()[0] != 7 {
		t.Errorf("count = %d, want 7", count2.Data.Int32s()[0])
	}
	if count2.ValidMin.Int32() != math.MinInt32 {
		t.Errorf("count valid_min = %d, want type default", count2.ValidMin.Int32())
	}

	reflectance2 := find("reflectance")
	if !reflect.DeepEqual(reflectance2.Data.Float32s(), []float32{0.5, 0.25, 0.125}) {
		t.Errorf("reflectance data = %v", reflectance2.Data.Float32s())
	}
	if string(reflectance2.Unit) != "1" {
		t.Errorf("reflectance unit = %q", reflectance2.Unit)
	}
	if !math.IsInf(float64(reflectance2.ValidMin.Float32()), -1) {
		t.Errorf("reflectance valid_min = %v, want -Inf", reflectance2.ValidMin.Float32())
	}

	radiance2 := find("radiance")
	if radiance2.NumDimensions != 2 ||
		radiance2.DimensionType[1] != native.DimensionSpectral || radiance2.Dimension[1] != 4 {
		t.Errorf("radiance spectral axis not preserved")
	}
	if got := radiance2.Data.Float32s(); got[11] != 5.5 {
		t.Errorf("radiance last element = %v, want 5.5", got[11])
	}

	altitude2 := find("altitude")
	if !reflect.DeepEqual(altitude2.Data.Float64s(), []float64{1053.5, 1812.25, 2409}) {
		t.Errorf("altitude data = %v", altitude2.Data.Float64s())
	}
	if string(altitude2.Unit) != "m" || string(altitude2.Description) != "altitude above sea level" {
		t.Errorf("altitude metadata = %q, %q", altitude2.Unit, altitude2.Description)
	}
	if altitude2.ValidMin.Float64() != 0 || altitude2.ValidMax.Float64() != 120000 {
		t.Errorf("altitude range = [%v, %v], want [0, 120000]",
			altitude2.ValidMin.Float64(), altitude2.ValidMax.Float64())
	}

	grid2 := find("grid")
	if grid2.NumDimensions != 2 ||
		grid2.DimensionType[1] != native.DimensionIndependent || grid2.Dimension[1] != 2 {
		t.Errorf("grid independent axis not preserved")
	}
	if !reflect.DeepEqual(grid2.Data.Float64s(), []float64{1, 2, 3, 4, 5, 6}) {
		t.Errorf("grid data = %v", grid2.Data.Float64s())
	}

	label2 := find("label")
	if label2.DataType != native.TypeString {
		t.Fatalf("label type = %v, want string", label2.DataType)
	}
	for i, want := range []string{"day", "night", ""} {
		if got := string(label2.Data.Strings[i]); got != want {
			t.Errorf("label[%d] = %q, want %q", i, got, want)
		}
	}

	site2 := find("site")
	if site2.NumDimensions != 0 || site2.NumElements != 1 {
		t.Errorf("site not scalar after import")
	}
	if got := string(site2.Data.Strings[0]); got != "" {
		t.Errorf("site = %q, want empty", got)
	}

	e.DeleteProduct(q)
	e.DeleteProduct(p)
	if products, variables := e.Live(); products != 0 || variables != 0 {
		t.Errorf("Live() = %d, %d after release, want 0, 0", products, variables)
	}
}

func TestImportErrors(t *testing.T) {
	e := newEngine(t)

	t.Run("missing file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "absent.nc")
		_, err := e.Import([]byte(path))
		ne := nativeCode(t, err)
		if ne.Code != ErrnoFileNotFound || !strings.Contains(ne.Message, "could not find") {
			t.Errorf("error = %v, want file-not-found", err)
		}
	})

	t.Run("unrecognized format", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "plain.nc")
		if err := os.WriteFile(path, []byte("plain text, not a product\n"), 0o644); err != nil {
			t.Fatalf("WriteFile: %v", err)
		}
		_, err := e.Import([]byte(path))
		if ne := nativeCode(t, err); ne.Code != ErrnoInvalidFormat {
			t.Errorf("code = %d, want %d", ne.Code, ErrnoInvalidFormat)
		}
	})

	t.Run("missing conventions", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "foreign.nc")
		w, err := cdf.OpenWriter(path)
		if err != nil {
			t.Fatalf("OpenWriter: %v", err)
		}
		if err := w.AddVar("x", api.Variable{Values: []int32{1, 2}, Dimensions: []string{"d"}}); err != nil {
			t.Fatalf("AddVar: %v", err)
		}
		if err := w.Close(); err != nil {
			t.Fatalf("Close: %v", err)
		}
		_, err = e.Import([]byte(path))
		ne := nativeCode(t, err)
		if ne.Code != ErrnoProduct || !strings.Contains(ne.Message, "not a HARP product") {
			t.Errorf("error = %v, want product error", err)
		}
	})
}

func writeForeignProduct(t *testing.T, path string, add func(w api.Writer)) {
	t.Helper()
	w, err := cdf.OpenWriter(path)
	if err != nil {
		t.Fatalf("OpenWriter: %v", err)
	}
	attrs, err := util.NewOrderedMap([]string{"Conventions"}, map[string]any{"Conventions": "HARP-1.0"})
	if err != nil {
		t.Fatalf("NewOrderedMap: %v", err)
	}
	if err := w.AddAttributes(attrs); err != nil {
		t.Fatalf("AddAttributes: %v", err)
	}
	add(w)
	if err := w.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
}

func TestImportForeignAttributes(t *testing.T) {
	e := newEngine(t)
	path := filepath.Join(t.TempDir(), "attrs.nc")
	writeForeignProduct(t, path, func(w api.Writer) {
		attrs, err := util.NewOrderedMap(
			[]string{"units", "valid_min", "valid_max"},
			map[string]any{"units": int32(4), "valid_min": float64(0.5), "valid_max": int16(300)})
		if err != nil {
			t.Fatalf("NewOrderedMap: %v", err)
		}
		v := api.Variable{
			Values:     []int16{1, 2},
			Dimensions: []string{"time"},
			Attributes: attrs,
		}
		if err := w.AddVar("elevation", v); err != nil {
			t.Fatalf("AddVar: %v", err)
		}
	})

	p, err := e.Import([]byte(path))
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	defer e.DeleteProduct(p)

	v := p.Variables[0]
	if v.Unit != nil {
		t.Errorf("unit = %q, want mismatched attribute dropped", v.Unit)
	}
	if v.ValidMin.Int16() != math.MinInt16 {
		t.Errorf("valid_min = %d, want type default after dropping float bound", v.ValidMin.Int16())
	}
	if v.ValidMax.Int16() != 300 {
		t.Errorf("valid_max = %d, want 300", v.ValidMax.Int16())
	}
}

func TestImportDimensionNames(t *testing.T) {
	e := newEngine(t)
	path := filepath.Join(t.TempDir(), "dims.nc")
	writeForeignProduct(t, path, func(w api.Writer) {
		corner := api.Variable{
			Values:     [][]float64{{1, 2}, {3, 4}},
			Dimensions: []string{"latitude", "longitude"},
		}
		if err := w.AddVar("corner_latitude", corner); err != nil {
			t.Fatalf("AddVar: %v", err)
		}
		irr := api.Variable{
			Values:     [][]float32{{0.5, 1}, {1.5, 2}, {2.5, 3}},
			Dimensions: []string{"spectral", "profile"},
		}
		if err := w.AddVar("irradiance", irr); err != nil {
			t.Fatalf("AddVar: %v", err)
		}
	})

	p, err := e.Import([]byte(path))
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	defer e.DeleteProduct(p)

	corner := p.Variables[0]
	if corner.DimensionType[0] != native.DimensionLatitude || corner.DimensionType[1] != native.DimensionLongitude {
		t.Errorf("corner_latitude axes = %v, %v", corner.DimensionType[0], corner.DimensionType[1])
	}
	irr := p.Variables[1]
	if irr.DimensionType[0] != native.DimensionSpectral || irr.DimensionType[1] != native.DimensionIndependent {
		t.Errorf("irradiance axes = %v, %v", irr.DimensionType[0], irr.DimensionType[1])
	}
	if !reflect.DeepEqual(irr.Data.Float32s(), []float32{0.5, 1, 1.5, 2, 2.5, 3}) {
		t.Errorf("irradiance data = %v", irr.Data.Float32s())
	}
}

func TestExportEmptyVariable(t *testing.T) {
	e := newEngine(t)
	p, err := e.NewProduct()
	if err != nil {
		t.Fatalf("NewProduct: %v", err)
	}
	hollow := mustVariable(t, e, "hollow", native.TypeDouble,
		[]native.DimensionType{native.DimensionTime}, []int64{0})
	mustAdd(t, e, p, hollow)

	path := filepath.Join(t.TempDir(), "empty.nc")
	err = e.Export([]byte(path), nil, p)
	ne := nativeCode(t, err)
	if ne.Code != ErrnoNetCDF || ne.Variable != "hollow" {
		t.Errorf("error = %v, want zero-element failure tagged with the variable", err)
	}
}

func TestIngestReadsFile(t *testing.T) {
	e := newEngine(t)
	p, err := e.NewProduct()
	if err != nil {
		t.Fatalf("NewProduct: %v", err)
	}
	v := mustVariable(t, e, "altitude", native.TypeDouble,
		[]native.DimensionType{native.DimensionTime}, []int64{2})
	copy(v.Data.Float64s(), []float64{10, 20})
	mustAdd(t, e, p, v)

	path := filepath.Join(t.TempDir(), "ingest.nc")
	if err := e.Export([]byte(path), nil, p); err != nil {
		t.Fatalf("Export: %v", err)
	}

	q, err := e.Ingest([]byte(path), nil, []byte("detector=nominal"))
	if err != nil {
		t.Fatalf("Ingest: %v", err)
	}
	defer e.DeleteProduct(q)
	if len(q.Variables) != 1 || string(q.Variables[0].Name) != "altitude" {
		t.Fatalf("ingested product has variables %v", q.Variables)
	}
	if !reflect.DeepEqual(q.Variables[0].Data.Float64s(), []float64{10, 20}) {
		t.Errorf("ingested data = %v", q.Variables[0].Data.Float64s())
	}
}
