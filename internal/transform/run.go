package transform

// RunFile transforms the batch at inputPath and writes the result to
// outputPath. It returns the number of records written.
func (e *Engine) RunFile(inputPath, outputPath, containerKey string) (int, error) {
	records, err := ReadBatch(inputPath, containerKey)
	if err != nil {
		return 0, err
	}
	out := e.Batch(records)
	if err := WriteBatch(outputPath, containerKey, out); err != nil {
		return 0, err
	}
	return len(out), nil
}
