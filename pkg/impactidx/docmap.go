package impactidx

// DocRecord is one document's map entry (spec.md §6): the impact core only
// touches AuxString when populating result records; the rest exists for
// the surrounding ranker.
type DocRecord struct {
	DocNo         DocNo
	Bytes         int64
	Words         int64
	DistinctWords int64
	Weight        float64
	AuxString     string
}

// DocMap is the docno → location/weight oracle. It is a black box to the
// evaluation core (spec.md §1): a plain slice indexed by docno is enough
// to satisfy the contract without pretending to be the real on-disk map.
type DocMap struct {
	records []DocRecord
}

// NewDocMap builds a DocMap from records indexed by DocNo; gaps are left
// zero-valued.
func NewDocMap(records []DocRecord) *DocMap {
	dm := &DocMap{}
	for _, r := range records {
		for int(r.DocNo) >= len(dm.records) {
			dm.records = append(dm.records, DocRecord{})
		}
		dm.records[r.DocNo] = r
	}
	return dm
}

// Get returns the record for docno, or ok=false if docno is out of range.
func (dm *DocMap) Get(docno DocNo) (DocRecord, bool) {
	if int(docno) >= len(dm.records) {
		return DocRecord{}, false
	}
	return dm.records[docno], true
}

// Len returns the number of documents the map knows about.
func (dm *DocMap) Len() int { return len(dm.records) }
