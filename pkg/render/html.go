package render

import (
	"bytes"
	"fmt"
	"html/template"
)

// PageData feeds the interactive HTML template.
type PageData struct {
	Title       string
	SVG         template.HTML
	Persons     int
	Generations int
}

// HTML wraps a rendered SVG in a self-contained interactive page with
// zoom, pan and download controls. The SVG is embedded inline, so the
// page works from the filesystem without a server.
func HTML(svg []byte, data PageData) ([]byte, error) {
	data.SVG = template.HTML(svg)
	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("execute page template: %w", err)
	}
	return buf.Bytes(), nil
}

var pageTemplate = template.Must(template.New("page").Parse(pageHTML))

const pageHTML = `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>{{.Title}}</title>
    <style>
        * {
            margin: 0;
            padding: 0;
            box-sizing: border-box;
        }

        body {
            font-family: 'Helvetica', Arial, sans-serif;
            background-color: #f5f5f5;
            overflow: hidden;
        }

        .header {
            background-color: #2c3e50;
            color: white;
            padding: 15px 20px;
            text-align: center;
            box-shadow: 0 2px 5px rgba(0,0,0,0.1);
        }

        .header h1 {
            font-size: 24px;
            font-weight: 500;
        }

        .controls {
            background-color: #34495e;
            padding: 10px 20px;
            display: flex;
            justify-content: center;
            gap: 10px;
            flex-wrap: wrap;
        }

        .controls button {
            background-color: #3498db;
            color: white;
            border: none;
            padding: 8px 16px;
            border-radius: 4px;
            cursor: pointer;
            font-size: 14px;
            transition: background-color 0.3s;
        }

        .controls button:hover {
            background-color: #2980b9;
        }

        .controls button.active {
            background-color: #27ae60;
        }

        .controls button.active:hover {
            background-color: #229954;
        }

        .svg-container {
            width: 100%;
            height: calc(100vh - 100px);
            overflow: auto;
            background-color: white;
            position: relative;
        }

        .svg-wrapper {
            padding: 20px;
            display: inline-block;
            min-width: 100%;
            min-height: 100%;
        }

        .svg-container.pan-mode {
            cursor: grab;
        }

        .svg-container.pan-mode.panning {
            cursor: grabbing;
        }

        svg {
            display: block;
            margin: 0 auto;
            max-width: none;
            height: auto;
        }

        .info {
            position: fixed;
            bottom: 10px;
            right: 10px;
            background-color: rgba(52, 73, 94, 0.9);
            color: white;
            padding: 10px 15px;
            border-radius: 5px;
            font-size: 12px;
        }
    </style>
</head>
<body>
    <div class="header">
        <h1>{{.Title}}</h1>
    </div>

    <div class="controls">
        <button onclick="zoomIn()">Zoom In (+)</button>
        <button onclick="zoomOut()">Zoom Out (-)</button>
        <button onclick="resetZoom()">Reset</button>
        <button id="panBtn" onclick="togglePan()">Enable Pan Mode</button>
        <button onclick="downloadSVG()">Download SVG</button>
    </div>

    <div class="svg-container" id="svgContainer">
        <div class="svg-wrapper">
            {{.SVG}}
        </div>
    </div>

    <div class="info">
        <strong>Persons:</strong> {{.Persons}} |
        <strong>Generations:</strong> {{.Generations}}
    </div>

    <script>
        let currentZoom = 1;
        let panEnabled = false;
        let isPanning = false;
        let startX, startY, scrollLeft, scrollTop;

        const svgContainer = document.getElementById('svgContainer');
        const svg = svgContainer.querySelector('svg');
        const panBtn = document.getElementById('panBtn');

        function zoomIn() {
            currentZoom += 0.1;
            applyZoom();
        }

        function zoomOut() {
            if (currentZoom > 0.2) {
                currentZoom -= 0.1;
                applyZoom();
            }
        }

        function resetZoom() {
            currentZoom = 1;
            applyZoom();
            svgContainer.scrollTop = 0;
            svgContainer.scrollLeft = 0;
        }

        function applyZoom() {
            svg.style.transform = 'scale(' + currentZoom + ')';
            svg.style.transformOrigin = 'top center';
        }

        function togglePan() {
            panEnabled = !panEnabled;

            if (panEnabled) {
                svgContainer.classList.add('pan-mode');
                panBtn.classList.add('active');
                panBtn.textContent = 'Disable Pan Mode';
            } else {
                svgContainer.classList.remove('pan-mode');
                panBtn.classList.remove('active');
                panBtn.textContent = 'Enable Pan Mode';
            }
        }

        function downloadSVG() {
            const svgData = svg.outerHTML;
            const blob = new Blob([svgData], {type: 'image/svg+xml'});
            const url = URL.createObjectURL(blob);
            const link = document.createElement('a');
            link.href = url;
            link.download = 'family_tree.svg';
            link.click();
            URL.revokeObjectURL(url);
        }

        // Pan via scroll offsets while the mouse is held down.
        svgContainer.addEventListener('mousedown', (e) => {
            if (!panEnabled) return;

            isPanning = true;
            svgContainer.classList.add('panning');
            startX = e.pageX - svgContainer.offsetLeft;
            startY = e.pageY - svgContainer.offsetTop;
            scrollLeft = svgContainer.scrollLeft;
            scrollTop = svgContainer.scrollTop;
        });

        svgContainer.addEventListener('mouseleave', () => {
            if (isPanning) {
                isPanning = false;
                svgContainer.classList.remove('panning');
            }
        });

        svgContainer.addEventListener('mouseup', () => {
            if (isPanning) {
                isPanning = false;
                svgContainer.classList.remove('panning');
            }
        });

        svgContainer.addEventListener('mousemove', (e) => {
            if (!isPanning) return;

            e.preventDefault();
            const x = e.pageX - svgContainer.offsetLeft;
            const y = e.pageY - svgContainer.offsetTop;
            const walkX = (x - startX) * 1.5;
            const walkY = (y - startY) * 1.5;

            svgContainer.scrollLeft = scrollLeft - walkX;
            svgContainer.scrollTop = scrollTop - walkY;
        });

        document.addEventListener('keydown', (e) => {
            if (e.key === '+' || e.key === '=') {
                zoomIn();
            } else if (e.key === '-') {
                zoomOut();
            } else if (e.key === '0') {
                resetZoom();
            } else if (e.key === 'p' || e.key === 'P') {
                togglePan();
            }
        });
    </script>
</body>
</html>
`
